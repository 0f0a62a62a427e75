package fileinput

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a line in an Input source.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Input reads lines sequentially through a Queue of one or more sources, as
// if they were one text separated by line breaks. Last tracks where the most
// recently returned line came from.
type Input struct {
	Queue []io.Reader
	Last  Location

	br   *bufio.Reader
	cur  io.Reader
	scan Location
}

// ReadLine returns the next line, always ending in a line feed, or io.EOF
// once every queued source is exhausted. The returned slice is only valid
// until the next call.
func (in *Input) ReadLine() ([]byte, error) {
	for {
		if in.br == nil && !in.nextIn() {
			return nil, io.EOF
		}

		line, err := in.br.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			// line aliases the reader buffer, which the next read reuses
			head := append([]byte(nil), line...)
			rest, restErr := in.br.ReadBytes('\n')
			line, err = append(head, rest...), restErr
		}
		if len(line) > 0 {
			if line[len(line)-1] != '\n' {
				line = append(line[:len(line):len(line)], '\n')
			}
			in.scan.Line++
			in.Last = in.scan
			if err == io.EOF {
				err = nil
				in.closeIn()
			}
			return line, err
		}
		if err == io.EOF {
			in.closeIn()
			continue
		}
		return nil, err
	}
}

func (in *Input) closeIn() {
	if cl, ok := in.cur.(io.Closer); ok {
		cl.Close()
	}
	in.cur, in.br = nil, nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	in.cur = in.Queue[0]
	in.Queue = in.Queue[1:]
	in.br = bufio.NewReader(in.cur)
	in.scan = Location{Name: nameOf(in.cur)}
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
