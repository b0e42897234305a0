package section

const (
	// Bit masks of the options field.
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1), 0=little, 1=big
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2, 3), must be zero
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicArchiveV1 identifies version 1 of the trapdc archive layout.
	MagicArchiveV1 = 0xDC10
)

const (
	HeaderSize    = 32         // fixed header size in bytes
	PayloadOffset = HeaderSize // byte offset where the payload starts
)
