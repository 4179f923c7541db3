package sysex

import (
	"errors"
	"testing"
)

func TestBody(t *testing.T) {
	tests := []struct {
		count int
		len   int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{127, 127},
		{128, 128},
		{1000, 1000},
	}

	for _, tt := range tests {
		body := Body(tt.count)
		if len(body) != tt.len {
			t.Errorf("Body(%d) length = %d, want %d", tt.count, len(body), tt.len)
		}
		for i, b := range body {
			if int(b) != i%128 {
				t.Fatalf("Body(%d)[%d] = %d, want %d", tt.count, i, b, i%128)
			}
		}
	}
}

func TestBodyWraps(t *testing.T) {
	body := Body(300)
	if body[127] != 127 {
		t.Errorf("body[127] = %d, want 127", body[127])
	}
	if body[128] != 0 {
		t.Errorf("body[128] = %d, want 0", body[128])
	}
	if body[299] != 43 {
		t.Errorf("body[299] = %d, want 43", body[299])
	}
}

func TestBuild(t *testing.T) {
	for _, count := range []int{0, 1, 2, 10, 127, 128, 129, 500, 1000} {
		msg, err := Build(count)
		if err != nil {
			t.Fatalf("Build(%d) error = %v", count, err)
		}
		if len(msg) != count+2 {
			t.Errorf("Build(%d) length = %d, want %d", count, len(msg), count+2)
		}
		if msg[0] != Start {
			t.Errorf("Build(%d) first byte = 0x%02X, want 0x%02X", count, msg[0], Start)
		}
		if msg[len(msg)-1] != End {
			t.Errorf("Build(%d) last byte = 0x%02X, want 0x%02X", count, msg[len(msg)-1], End)
		}
		if err := VerifyIncrementing(msg, count); err != nil {
			t.Errorf("VerifyIncrementing(Build(%d)) error = %v", count, err)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	msg, err := Build(0)
	if err != nil {
		t.Fatalf("Build(0) error = %v", err)
	}
	if len(msg) != 2 || msg[0] != 0xF0 || msg[1] != 0xF7 {
		t.Errorf("Build(0) = % X, want F0 F7", []byte(msg))
	}
}

func TestBuildNegative(t *testing.T) {
	if _, err := Build(-3); !errors.Is(err, ErrNegativeLength) {
		t.Errorf("Build(-3) error = %v, want ErrNegativeLength", err)
	}
}

func TestEncodeRejectsHighBytes(t *testing.T) {
	_, err := Encode([]byte{0x01, 0x80})
	if !errors.Is(err, ErrDataByteRange) {
		t.Errorf("Encode() error = %v, want ErrDataByteRange", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"valid empty", []byte{0xF0, 0xF7}, nil},
		{"valid body", []byte{0xF0, 0x00, 0x01, 0xF7}, nil},
		{"empty", []byte{}, ErrTooShort},
		{"single byte", []byte{0xF0}, ErrTooShort},
		{"no start byte", []byte{0x00, 0x01, 0xF7}, ErrMissingStart},
		{"no end byte", []byte{0xF0, 0x00, 0x01}, ErrMissingEnd},
		{"high data byte", []byte{0xF0, 0x00, 0x90, 0xF7}, ErrDataByteRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.data)
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVerifyIncrementing(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		count int
		want  error
	}{
		{"empty", []byte{0xF0, 0xF7}, 0, nil},
		{"three bytes", []byte{0xF0, 0x00, 0x01, 0x02, 0xF7}, 3, nil},
		{"too long", []byte{0xF0, 0x00, 0x01, 0xF7}, 1, ErrLength},
		{"too short", []byte{0xF0, 0x00, 0xF7}, 2, ErrLength},
		{"wrong start value", []byte{0xF0, 0x01, 0x02, 0xF7}, 2, ErrBodyMismatch},
		{"gap", []byte{0xF0, 0x00, 0x02, 0xF7}, 2, ErrBodyMismatch},
		{"bad framing", []byte{0xF7, 0x00, 0xF0}, 1, ErrMissingStart},
		{"negative count", []byte{0xF0, 0xF7}, -1, ErrNegativeLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyIncrementing(tt.data, tt.count)
			if tt.want == nil {
				if err != nil {
					t.Errorf("VerifyIncrementing() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("VerifyIncrementing() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVerifyIncrementingAfterWrap(t *testing.T) {
	msg, err := Build(200)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	// position 129 (1-indexed) must hold 0 after the wrap
	if msg[129] != 0 {
		t.Errorf("position 129 = %d, want 0", msg[129])
	}

	msg[130] = 0x05
	if err := VerifyIncrementing(msg, 200); !errors.Is(err, ErrBodyMismatch) {
		t.Errorf("VerifyIncrementing() error = %v, want ErrBodyMismatch", err)
	}
}

func TestPayload(t *testing.T) {
	payload, err := Payload([]byte{0xF0, 0x00, 0x01, 0xF7})
	if err != nil {
		t.Fatalf("Payload() error = %v", err)
	}
	if len(payload) != 2 || payload[0] != 0x00 || payload[1] != 0x01 {
		t.Errorf("Payload() = % X, want 00 01", payload)
	}

	if _, err := Payload([]byte{0x00}); err == nil {
		t.Error("Payload() expected error for invalid data")
	}
}
