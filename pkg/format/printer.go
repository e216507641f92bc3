package format

import "strings"

type printer struct {
	output strings.Builder
}

func newPrinter() *printer {
	return &printer{}
}

func (p *printer) String() string {
	return p.output.String()
}

// write appends a token, inserting a space when the previous output and
// the token would otherwise fuse: identifier characters running together,
// two minus signs forming a comment, an index bracket swallowing a long
// string opener, or a concat dot merging with a number.
func (p *printer) write(s string) {
	if s == "" {
		return
	}
	if p.needsSeparator(s[0]) {
		p.output.WriteByte(' ')
	}
	p.output.WriteString(s)
}

func (p *printer) space() {
	out := p.output.String()
	if len(out) > 0 && out[len(out)-1] != ' ' {
		p.output.WriteByte(' ')
	}
}

func (p *printer) needsSeparator(next byte) bool {
	out := p.output.String()
	if len(out) == 0 {
		return false
	}
	last := out[len(out)-1]
	switch {
	case isWordByte(last) && isWordByte(next):
		return true
	case last == '-' && next == '-':
		return true
	case last == '[' && (next == '[' || next == '='):
		return true
	case last == '.' && (next == '.' || next >= '0' && next <= '9'):
		return true
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		b >= 'a' && b <= 'z' ||
		b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9'
}
