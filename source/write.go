package source

import (
	"bufio"
	"io"
	"strconv"
)

// Write emits c in the text clip grammar accepted by Parse.
//
// Samples are written in their shortest round-trip form, so Parse(Write(c))
// reproduces every value exactly.
func Write(w io.Writer, c *Clip) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("{\n")
	bw.WriteString("   rate = ")
	bw.WriteString(FormatFloat(c.Rate))
	bw.WriteString("\n   start = ")
	bw.WriteString(strconv.Itoa(c.Start - 1))
	bw.WriteString("\n   tracklength = ")
	bw.WriteString(strconv.Itoa(c.FrameCount))
	bw.WriteString("\n   tracks = ")
	bw.WriteString(strconv.Itoa(len(c.Channels)))
	bw.WriteByte('\n')

	for _, ch := range c.Channels {
		bw.WriteString("   {\n      name = ")
		bw.WriteString(ch.Name)
		for _, kv := range [...][2]string{
			{"lefttype", ch.LeftType},
			{"righttype", ch.RightType},
			{"default", ch.Default},
		} {
			if kv[1] == "" {
				continue
			}
			bw.WriteString("\n      ")
			bw.WriteString(kv[0])
			bw.WriteString(" = ")
			bw.WriteString(kv[1])
		}
		bw.WriteString("\n      data =")
		for _, v := range ch.Data {
			bw.WriteByte(' ')
			bw.WriteString(FormatFloat(v))
		}
		bw.WriteString("\n   }\n")
	}

	if len(c.QuatChannels) > 0 {
		bw.WriteString("   quaternions = ")
		bw.WriteString(c.QuatOrder)
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(len(c.QuatChannels)))
		for _, q := range c.QuatChannels {
			for _, v := range [...]int{q.X, q.Y, q.Z} {
				bw.WriteByte(' ')
				bw.WriteString(strconv.Itoa(v))
			}
		}
		bw.WriteByte('\n')
	}

	bw.WriteString("}\n")

	return bw.Flush()
}

// FormatFloat formats a sample in its shortest round-trip decimal form.
func FormatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
