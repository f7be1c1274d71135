//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/smallyu/go-dht-stealth/pkg/signer"
	"github.com/smallyu/go-dht-stealth/pkg/stealth"
)

// Every call is stateless; the curve is fixed to the on-chain one.
var curve = stealth.Secp256k1()

func main() {
	c := make(chan struct{}, 0)

	fmt.Println("Go DHT-Stealth WASM Initialized")

	// Expose Go functions to JS
	js.Global().Set("GoStealth", map[string]interface{}{
		"GenerateRegisters": js.FuncOf(GenerateRegisters),
		"IsSpendable":       js.FuncOf(IsSpendable),
		"BuildSecrets":      js.FuncOf(BuildSecrets),
	})

	<-c
}

// registersDTO mirrors a node box's additionalRegisters.
type registersDTO struct {
	R4 string `json:"R4"`
	R5 string `json:"R5"`
	R6 string `json:"R6"`
	R7 string `json:"R7"`
}

// GenerateRegisters builds a stealth payload for a recipient.
// Arguments:
// 0: recipient public key, compressed hex
// Returns:
// JSON string {"R4": ..., "R5": ..., "R6": ..., "R7": ...} or "error: ..."
func GenerateRegisters(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (publicKeyHex)"
	}
	recipient, err := stealth.ParsePointHex(curve, args[0].String())
	if err != nil {
		return fmt.Sprintf("error: invalid public key: %v", err)
	}
	p, err := stealth.NewGenerator(curve).Generate(recipient)
	if err != nil {
		return fmt.Sprintf("error: generate failed: %v", err)
	}
	regs, err := p.Registers(curve)
	if err != nil {
		return fmt.Sprintf("error: encode failed: %v", err)
	}
	h := regs.Hex()
	respBytes, _ := json.Marshal(registersDTO{R4: h[0], R5: h[1], R6: h[2], R7: h[3]})
	return string(respBytes)
}

// IsSpendable checks a box's registers against a secret.
// Arguments:
// 0: secret scalar, hex
// 1: JSON string of additionalRegisters
// Returns:
// bool, false for malformed registers
func IsSpendable(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (secretHex, registersJSON)"
	}
	x, regs, err := parseArgs(args)
	if err != nil {
		return false
	}
	return stealth.NewDetector(curve).ScanRegisters(x, regs)
}

// BuildSecrets returns the wallet sign secrets for a spendable box.
// Arguments:
// 0: secret scalar, hex
// 1: JSON string of additionalRegisters
// Returns:
// JSON string {"dht": [...]} or "error: ..."
func BuildSecrets(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (secretHex, registersJSON)"
	}
	x, regs, err := parseArgs(args)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	p, err := regs.Payload(curve)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	if !stealth.NewDetector(curve).IsSpendable(x, p) {
		return "error: box is not spendable by this key"
	}
	secrets, err := signer.NewSecrets(curve, stealth.BuildWitness(x, p))
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	respBytes, _ := json.Marshal(secrets)
	return string(respBytes)
}

func parseArgs(args []js.Value) (stealth.Scalar, stealth.Registers, error) {
	x, err := stealth.ParseScalarHex(curve, args[0].String())
	if err != nil {
		return nil, stealth.Registers{}, err
	}
	var dto registersDTO
	if err := json.Unmarshal([]byte(args[1].String()), &dto); err != nil {
		return nil, stealth.Registers{}, fmt.Errorf("invalid registers json: %v", err)
	}
	regs, err := stealth.RegistersFromHex([4]string{dto.R4, dto.R5, dto.R6, dto.R7})
	if err != nil {
		return nil, stealth.Registers{}, err
	}
	return x, regs, nil
}
