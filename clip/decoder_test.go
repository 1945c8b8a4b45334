package clip

import (
	"encoding/binary"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mclip/errs"
	"github.com/arloliu/mclip/format"
	"github.com/arloliu/mclip/section"
	"github.com/arloliu/mclip/source"
)

func twoNodeClip() *source.Clip {
	src := source.New("pair", 30, 4)
	src.MustAddChannel("alpha:tx", ramp(4, 0, 1))
	src.MustAddChannel("beta:ty", ramp(4, 3, -1))

	return src
}

func TestNewDecoder_Errors(t *testing.T) {
	valid := encode(t, rootClip())

	badMagic := slices.Clone(valid)
	copy(badMagic, "XXXX")

	smallSize := slices.Clone(valid)
	binary.LittleEndian.PutUint32(smallSize[section.ClipSizeOffset:], section.ClipHeaderSize-1)

	negFrames := slices.Clone(valid)
	binary.LittleEndian.PutUint32(negFrames[section.ClipFrameCountOffset:], 0xFFFFFFFF)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, errs.ErrInvalidHeaderSize},
		{"short header", valid[:section.ClipHeaderSize-1], errs.ErrInvalidHeaderSize},
		{"bad magic", badMagic, errs.ErrInvalidFormat},
		{"truncated", valid[:len(valid)-1], errs.ErrTruncatedData},
		{"size below header", smallSize, errs.ErrInvalidFormat},
		{"negative frames", negFrames, errs.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewDecoder_IgnoresTrailingBytes(t *testing.T) {
	data := append(encode(t, rootClip()), 0xDE, 0xAD)

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	require.Equal(t, uint32(len(data)-2), dec.Header().Size)

	c, err := dec.Decode()
	require.NoError(t, err)
	require.Len(t, c.Bytes(), len(data)-2)
}

func TestDecoder_DuplicateNode(t *testing.T) {
	data := encode(t, twoNodeClip())

	first := data[section.ClipHeaderSize : section.ClipHeaderSize+section.FixStrSize]
	second := section.ClipHeaderSize + section.NodeRecordSize
	copy(data[second:second+section.FixStrSize], first)

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	_, err = dec.Decode()
	require.ErrorIs(t, err, errs.ErrDuplicateNode)
}

func TestDecoder_InvalidOffsets(t *testing.T) {
	le := binary.LittleEndian
	dataPos := section.ClipHeaderSize + section.DataOffsetPos(format.TrackPosition)

	tests := []struct {
		name  string
		patch func(data []byte)
		want  error
	}{
		{
			name:  "node count",
			patch: func(data []byte) { le.PutUint32(data[section.ClipNodeCountOffset:], 1000) },
			want:  errs.ErrInvalidOffset,
		},
		{
			name:  "track data",
			patch: func(data []byte) { le.PutUint32(data[dataPos:], uint32(len(data)-8)) },
			want:  errs.ErrInvalidOffset,
		},
		{
			name:  "missing track data",
			patch: func(data []byte) { le.PutUint32(data[dataPos:], 0) },
			want:  errs.ErrInvalidOffset,
		},
		{
			name:  "hash array",
			patch: func(data []byte) { le.PutUint32(data[section.ClipHashOffset:], uint32(len(data))) },
			want:  errs.ErrInvalidOffset,
		},
		{
			name:  "eval table",
			patch: func(data []byte) { le.PutUint32(data[section.ClipEvalOffset:], uint32(len(data)-4)) },
			want:  errs.ErrInvalidOffset,
		},
		{
			name:  "seq table",
			patch: func(data []byte) { le.PutUint32(data[section.ClipSeqOffset:], uint32(len(data)-8)) },
			want:  errs.ErrInvalidOffset,
		},
		{
			name: "seq sample offset",
			patch: func(data []byte) {
				seqTop := int(le.Uint32(data[section.ClipSeqOffset:]))
				le.PutUint32(data[seqTop+section.SeqEntrySize:], uint32(len(data)-4))
			},
			want: errs.ErrInvalidOffset,
		},
		{
			name: "eval entry node",
			patch: func(data []byte) {
				evalTop := int(le.Uint32(data[section.ClipEvalOffset:]))
				le.PutUint16(data[evalTop+section.EvalCountsSize:], 7)
			},
			want: errs.ErrInvalidFormat,
		},
		{
			name: "curves exceed channels",
			patch: func(data []byte) {
				evalTop := int(le.Uint32(data[section.ClipEvalOffset:]))
				le.PutUint32(data[evalTop+24:], 5)
			},
			want: errs.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encode(t, rootClip())
			tt.patch(data)

			dec, err := NewDecoder(data)
			require.NoError(t, err)
			_, err = dec.Decode()
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClip_FindNode(t *testing.T) {
	for _, count := range []int{1, 3, linearSearchLimit, linearSearchLimit + 1, 64} {
		t.Run(fmt.Sprintf("%d nodes", count), func(t *testing.T) {
			src := source.New("bones", 30, 2)
			names := make([]string, count)
			for i := range names {
				names[i] = fmt.Sprintf("bone%02d", i)
				src.MustAddChannel(names[i]+":tx", []float32{0, float32(i)})
			}

			c := decode(t, encode(t, src))
			require.Equal(t, count, c.NodeCount())
			for i, name := range names {
				n := c.FindNode(name)
				require.NotNil(t, n, name)
				require.Equal(t, name, n.Name)
				require.Equal(t, float32(i), n.Position(1)[0])
				require.Same(t, c.Node(n.Index), n)
			}
			require.Nil(t, c.FindNode("missing"))
			require.Equal(t, -1, c.NodeIndex("bone"))
		})
	}
}

func TestClip_FindNodeUnsortedHashes(t *testing.T) {
	src := source.New("bones", 30, 1)
	for i := range linearSearchLimit + 5 {
		src.MustAddChannel(fmt.Sprintf("j%d:tx", i), []float32{1})
	}
	data := encode(t, src)

	le := binary.LittleEndian
	hashTop := int(le.Uint32(data[section.ClipHashOffset:]))
	h0 := le.Uint32(data[hashTop:])
	h1 := le.Uint32(data[hashTop+4:])
	le.PutUint32(data[hashTop:], h1)
	le.PutUint32(data[hashTop+4:], h0)

	c := decode(t, data)
	for i := range c.NodeCount() {
		name := c.Node(i).Name
		require.Equal(t, i, c.NodeIndex(name))
	}
}
