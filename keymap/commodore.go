package keymap

// InputCode is one byte of the Commodore ASCII stream.
type InputCode = uint8

// Commodore control codes, CHR$ values in comments.
const (
	CodeRunStop   InputCode = 0x03 // CHR$(3)
	CodeReturn    InputCode = 0x0D // CHR$(13)
	CodeCrsrDown  InputCode = 0x11 // CHR$(17)
	CodeCrsrRight InputCode = 0x1D // CHR$(29)
	CodeCrsrUp    InputCode = 0x91 // CHR$(145)
	CodeClrHome   InputCode = 0x93 // CHR$(147)
	CodeCrsrLeft  InputCode = 0x9D // CHR$(157)
	// CodeRestore has no CHR$ equivalent; senders use it for RUN/STOP+RESTORE.
	CodeRestore InputCode = 0xFF

	CodeF1 InputCode = 0x85 // CHR$(133)
	CodeF2 InputCode = 0x86
	CodeF3 InputCode = 0x87
	CodeF4 InputCode = 0x88
	CodeF5 InputCode = 0x89
	CodeF6 InputCode = 0x8A
	CodeF7 InputCode = 0x8B
	CodeF8 InputCode = 0x8C // CHR$(140)
)

// Color selection codes.
const (
	CodeBlack      InputCode = 0x90 // CHR$(144)
	CodeWhite      InputCode = 0x05 // CHR$(5)
	CodeRed        InputCode = 0x1C // CHR$(28)
	CodeCyan       InputCode = 0x9F // CHR$(159)
	CodePurple     InputCode = 0x9C // CHR$(156)
	CodeGreen      InputCode = 0x1E // CHR$(30)
	CodeBlue       InputCode = 0x1F // CHR$(31)
	CodeYellow     InputCode = 0x9E // CHR$(158)
	CodeOrange     InputCode = 0x81 // CHR$(129)
	CodeBrown      InputCode = 0x95 // CHR$(149)
	CodeLightRed   InputCode = 0x96 // CHR$(150)
	CodeDarkGray   InputCode = 0x97 // CHR$(151)
	CodeMediumGray InputCode = 0x98 // CHR$(152)
	CodeLightGreen InputCode = 0x99 // CHR$(153)
	CodeLightBlue  InputCode = 0x9A // CHR$(154)
	CodeLightGray  InputCode = 0x9B // CHR$(155)
)

// Printable range passed through unchanged.
const (
	PrintableMin InputCode = 32
	PrintableMax InputCode = 126
)
