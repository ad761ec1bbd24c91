// internal/utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Wireless Mouse", "wireless-mouse"},
		{"  USB-C  Hub (7 ports!) ", "usb-c-hub-7-ports"},
		{"ALLCAPS", "allcaps"},
		{"--already--slugged--", "already-slugged"},
		{"123 numbers", "123-numbers"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}
