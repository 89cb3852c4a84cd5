package geo

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// peekReader sniffs the first line of a stream without consuming it.
type peekReader struct {
	*bufio.Reader
}

func newPeekReader(r io.Reader) *peekReader {
	return &peekReader{bufio.NewReaderSize(r, 64*1024)}
}

func (p *peekReader) firstLineHas(b byte) (bool, error) {
	for n := 512; ; n *= 2 {
		buf, err := p.Peek(n)
		if i := bytes.IndexByte(buf, '\n'); i >= 0 {
			return bytes.IndexByte(buf[:i], b) >= 0, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, bufio.ErrBufferFull) {
				return bytes.IndexByte(buf, b) >= 0, nil
			}
			return false, err
		}
	}
}
