// Package sysex builds and checks the framed System Exclusive messages used as test fixtures
package sysex

import (
	"errors"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// SysEx constants
const (
	Start = 0xF0
	End   = 0xF7

	// DataMask covers the 7 bits a SysEx data byte may carry
	DataMask = 0x7F
	// DataRange is the number of distinct data byte values
	DataRange = DataMask + 1
)

var (
	ErrTooShort       = errors.New("sysex data too short")
	ErrMissingStart   = errors.New("missing sysex start byte")
	ErrMissingEnd     = errors.New("missing sysex end byte")
	ErrDataByteRange  = errors.New("data byte out of 7-bit range")
	ErrLength         = errors.New("unexpected sysex length")
	ErrBodyMismatch   = errors.New("body byte does not match incrementing pattern")
	ErrNegativeLength = errors.New("negative data byte count")
)

// Message is a complete SysEx message, start and end markers included
type Message = midi.Message

// Body returns count data bytes counting up from zero and wrapping at 128
func Body(count int) []byte {
	if count <= 0 {
		return []byte{}
	}
	body := make([]byte, count)
	for i := range body {
		body[i] = byte(i % DataRange)
	}
	return body
}

// Encode frames body with the SysEx start and end markers
func Encode(body []byte) (Message, error) {
	for i, b := range body {
		if b > DataMask {
			return nil, fmt.Errorf("%w: body position %d is 0x%02X", ErrDataByteRange, i, b)
		}
	}
	return midi.SysEx(body), nil
}

// Build returns the fixture message carrying count incrementing data bytes
func Build(count int) (Message, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLength, count)
	}
	return Encode(Body(count))
}

// Validate checks the framing of a single SysEx message
func Validate(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("%w: got %d bytes", ErrTooShort, len(data))
	}

	if data[0] != Start {
		return fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrMissingStart, Start, data[0])
	}

	if data[len(data)-1] != End {
		return fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrMissingEnd, End, data[len(data)-1])
	}

	for i := 1; i < len(data)-1; i++ {
		if data[i] > DataMask {
			return fmt.Errorf("%w: byte at position %d is 0x%02X", ErrDataByteRange, i, data[i])
		}
	}

	return nil
}

// VerifyIncrementing checks that data is exactly the message Build(count) produces
func VerifyIncrementing(data []byte, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLength, count)
	}
	if err := Validate(data); err != nil {
		return err
	}
	if len(data) != count+2 {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrLength, len(data), count+2)
	}

	// position is 1-indexed within the body
	for i := 1; i <= count; i++ {
		want := byte((i - 1) % DataRange)
		if data[i] != want {
			return fmt.Errorf("%w: position %d is 0x%02X, want 0x%02X", ErrBodyMismatch, i, data[i], want)
		}
	}
	return nil
}

// Payload returns the data bytes between the start and end markers
func Payload(data []byte) ([]byte, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	return data[1 : len(data)-1], nil
}
