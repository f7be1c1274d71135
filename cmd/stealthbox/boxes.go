package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/smallyu/go-dht-stealth/pkg/stealth"
)

// registerSet is the additionalRegisters object of a node box. Only the four
// payload registers are read.
type registerSet struct {
	R4 string `json:"R4"`
	R5 string `json:"R5"`
	R6 string `json:"R6"`
	R7 string `json:"R7"`
}

func registerSetOf(regs stealth.Registers) registerSet {
	h := regs.Hex()
	return registerSet{R4: h[stealth.SlotGr], R5: h[stealth.SlotGy], R6: h[stealth.SlotUr], R7: h[stealth.SlotUy]}
}

func (s registerSet) registers() (stealth.Registers, error) {
	return stealth.RegistersFromHex([4]string{s.R4, s.R5, s.R6, s.R7})
}

type box struct {
	BoxID               string      `json:"boxId"`
	AdditionalRegisters registerSet `json:"additionalRegisters"`
}

// readBoxes reads a single box object or an array of boxes.
func readBoxes(path string) ([]box, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read boxes: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var boxes []box
		if err := json.Unmarshal(data, &boxes); err != nil {
			return nil, fmt.Errorf("parse boxes: %w", err)
		}
		return boxes, nil
	}
	var b box
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse box: %w", err)
	}
	return []box{b}, nil
}
