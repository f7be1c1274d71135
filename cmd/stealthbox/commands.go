package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/smallyu/go-dht-stealth/pkg/signer"
	"github.com/smallyu/go-dht-stealth/pkg/stealth"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

func cmdPubkey(e *env, args []string) error {
	if err := parse(newFlagSet("pubkey"), args); err != nil {
		return err
	}
	kp, err := e.keyPair()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, kp.PublicHex())
	return err
}

// sendOutput is the stealth output a transaction builder needs.
type sendOutput struct {
	ErgoTree            string      `json:"ergoTree"`
	AdditionalRegisters registerSet `json:"additionalRegisters"`
}

func cmdSend(e *env, args []string) error {
	fs := newFlagSet("send")
	to := fs.String("to", "", "recipient public key, compressed hex")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *to == "" {
		return fmt.Errorf("%w: send: -to is required", errUsage)
	}
	recipient, err := stealth.ParsePointHex(e.curve, *to)
	if err != nil {
		return fmt.Errorf("send: recipient: %w", err)
	}

	p, err := stealth.NewGenerator(e.curve).Generate(recipient)
	if err != nil {
		return err
	}
	regs, err := p.Registers(e.curve)
	if err != nil {
		return err
	}
	e.logger.Info("Created stealth payload", "recipient", *to)
	return writeJSON(e.stdout, sendOutput{ErgoTree: signer.StealthErgoTree, AdditionalRegisters: registerSetOf(regs)})
}

func cmdScan(e *env, args []string) error {
	fs := newFlagSet("scan")
	path := fs.String("boxes", "-", "JSON file with one box or an array of boxes, - for stdin")
	strict := fs.Bool("strict", false, "fail on boxes with malformed registers")
	if err := parse(fs, args); err != nil {
		return err
	}
	boxes, err := readBoxes(*path)
	if err != nil {
		return err
	}
	kp, err := e.keyPair()
	if err != nil {
		return err
	}

	det := stealth.NewDetector(e.curve)
	candidates := make([]stealth.Registers, 0, len(boxes))
	for _, b := range boxes {
		regs, err := b.AdditionalRegisters.registers()
		if err != nil {
			if *strict {
				return fmt.Errorf("scan: box %s: %w", b.BoxID, err)
			}
			e.logger.Debug("Skipping box with unreadable registers", "box", b.BoxID, "err", err)
			regs = stealth.Registers{}
		}
		if *strict {
			if _, err := det.CheckRegisters(kp.Secret(), regs); err != nil {
				return fmt.Errorf("scan: box %s: %w", b.BoxID, err)
			}
		}
		candidates = append(candidates, regs)
	}

	hits := det.Scan(kp.Secret(), candidates)
	for _, i := range hits {
		fmt.Fprintln(e.stdout, boxes[i].BoxID)
	}
	e.logger.Info("Scanned boxes", "boxes", len(boxes), "spendable", len(hits))
	return nil
}

var errNotSpendable = errors.New("box is not spendable by this key")

func cmdWitness(e *env, args []string) error {
	fs := newFlagSet("witness")
	path := fs.String("box", "-", "JSON file with the box to spend, - for stdin")
	prove := fs.Bool("prove", false, "print a local tuple proof instead of the sign secrets")
	if err := parse(fs, args); err != nil {
		return err
	}
	boxes, err := readBoxes(*path)
	if err != nil {
		return err
	}
	if len(boxes) != 1 {
		return fmt.Errorf("%w: witness: expected one box, got %d", errUsage, len(boxes))
	}
	kp, err := e.keyPair()
	if err != nil {
		return err
	}

	regs, err := boxes[0].AdditionalRegisters.registers()
	if err != nil {
		return fmt.Errorf("witness: box %s: %w", boxes[0].BoxID, err)
	}
	p, err := regs.Payload(e.curve)
	if err != nil {
		return fmt.Errorf("witness: box %s: %w", boxes[0].BoxID, err)
	}
	if !stealth.NewDetector(e.curve).IsSpendable(kp.Secret(), p) {
		return fmt.Errorf("witness: box %s: %w", boxes[0].BoxID, errNotSpendable)
	}

	w := stealth.BuildWitness(kp.Secret(), p)
	if *prove {
		raw, err := signer.SignStealthSpend(context.Background(), signer.NewLocalProver(e.curve), e.curve, json.RawMessage("null"), w)
		if err != nil {
			return err
		}
		if err := signer.VerifyProvenTx(e.curve, raw, p); err != nil {
			return err
		}
		return writeJSON(e.stdout, raw)
	}
	secrets, err := signer.NewSecrets(e.curve, w)
	if err != nil {
		return err
	}
	return writeJSON(e.stdout, secrets)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
