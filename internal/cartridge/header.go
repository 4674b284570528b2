package cartridge

import (
	"fmt"
	"strings"
)

// Type is the cartridge type stored at 0x0147, describing the memory
// bank controller and the extra hardware of the cartridge.
type Type uint8

const (
	ROM        Type = 0x00
	MBC1       Type = 0x01
	MBC1RAM    Type = 0x02
	MBC2       Type = 0x05
	ROMRAM     Type = 0x08
	MBC3       Type = 0x11
	MBC5       Type = 0x19
	HUDSONHUC1 Type = 0xFF
)

var typeNames = map[Type]string{
	ROM:        "ROM ONLY",
	MBC1:       "MBC1",
	MBC1RAM:    "MBC1+RAM",
	MBC2:       "MBC2",
	ROMRAM:     "ROM+RAM",
	MBC3:       "MBC3",
	MBC5:       "MBC5",
	HUDSONHUC1: "HuC1",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown (%02X)", uint8(t))
}

const (
	headerStart = 0x0100
	headerEnd   = 0x0150
)

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	CartridgeType  Type
	ROMSize        uint
	HeaderChecksum uint8
	GlobalChecksum uint16
}

// parseHeader parses the 0x50 bytes of the header.
func parseHeader(header []byte) Header {
	h := Header{}

	// parse the title, padded with zeroes
	h.Title = strings.TrimRight(string(header[0x34:0x44]), "\x00")

	h.CartridgeType = Type(header[0x47])

	// parse the ROM size (calculated by 32kB x (1 << n))
	h.ROMSize = (32 * 1024) * (1 << (header[0x48] & 0x0F))

	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h
}

// String returns a one line summary of the header.
func (h Header) String() string {
	return fmt.Sprintf("%s | %s | %dKiB", h.Title, h.CartridgeType, h.ROMSize/1024)
}
