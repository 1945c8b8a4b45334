package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arloliu/mclip/errs"
)

// preallocLimit caps capacity reserved from declared counts; longer inputs grow
// as their tokens arrive.
const preallocLimit = 4096

// tokenizer yields whitespace-separated tokens and counts them for error messages.
type tokenizer struct {
	sc  *bufio.Scanner
	pos int
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	return &tokenizer{sc: sc}
}

func (t *tokenizer) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", fmt.Errorf("read clip: %w", err)
		}

		return "", fmt.Errorf("%w: unexpected end of input after token %d", errs.ErrSyntax, t.pos)
	}
	t.pos++

	return t.sc.Text(), nil
}

func (t *tokenizer) expect(want string) error {
	tok, err := t.next()
	if err != nil {
		return err
	}
	if tok != want {
		return t.errorf("expected %q, got %q", want, tok)
	}

	return nil
}

func (t *tokenizer) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: token %d: %s", errs.ErrSyntax, t.pos, fmt.Sprintf(format, args...))
}

func (t *tokenizer) float() (float32, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}

	return t.parseFloat(tok)
}

func (t *tokenizer) parseFloat(tok string) (float32, error) {
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, t.errorf("bad number %q", tok)
	}

	return float32(v), nil
}

func (t *tokenizer) int() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}

	return t.parseInt(tok)
}

func (t *tokenizer) parseInt(tok string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, t.errorf("bad integer %q", tok)
	}

	return v, nil
}

// Parse reads a text clip.
//
// The clip body is a brace-delimited list of "key = value" pairs. Recognized
// keys are rate, start, tracklength, tracks and quaternions; any other key has
// its single value skipped. tracklength must precede tracks.
//
// Returns:
//   - *Clip: the parsed clip, with Name and Path unset
//   - error: ErrSyntax wrapping the offending token position, ErrInvalidFrameCount
//     when tracklength is negative or above MaxFrameCount
func Parse(r io.Reader) (*Clip, error) {
	t := newTokenizer(r)
	clip := New("", DefaultRate, 0)

	if err := t.expect("{"); err != nil {
		return nil, err
	}

	for {
		key, err := t.next()
		if err != nil {
			return nil, err
		}
		if key == "}" {
			break
		}
		if err := t.expect("="); err != nil {
			return nil, err
		}

		value, err := t.next()
		if err != nil {
			return nil, err
		}

		switch key {
		case "rate":
			if clip.Rate, err = t.parseFloat(value); err != nil {
				return nil, err
			}
		case "start":
			start, err := t.parseInt(value)
			if err != nil {
				return nil, err
			}
			clip.Start = start + 1
		case "tracklength":
			n, err := t.parseInt(value)
			if err != nil {
				return nil, err
			}
			if n < 0 || n > MaxFrameCount {
				return nil, fmt.Errorf("%w: tracklength %d, at most %d", errs.ErrInvalidFrameCount, n, MaxFrameCount)
			}
			clip.FrameCount = n
		case "tracks":
			n, err := t.parseInt(value)
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, t.errorf("negative track count %d", n)
			}
			if err := parseTracks(t, clip, n); err != nil {
				return nil, err
			}
		case "quaternions":
			clip.QuatOrder = value
			if err := parseQuatChannels(t, clip); err != nil {
				return nil, err
			}
		}
	}

	clip.reindex()

	return clip, nil
}

func parseTracks(t *tokenizer, clip *Clip, n int) error {
	clip.Channels = make([]*Channel, 0, min(n, preallocLimit))
	for range n {
		ch, err := parseTrack(t, clip.FrameCount)
		if err != nil {
			return err
		}
		clip.Channels = append(clip.Channels, ch)
	}

	return nil
}

func parseTrack(t *tokenizer, frames int) (*Channel, error) {
	if err := t.expect("{"); err != nil {
		return nil, err
	}

	ch := &Channel{}
	for {
		key, err := t.next()
		if err != nil {
			return nil, err
		}
		if key == "}" {
			break
		}
		if err := t.expect("="); err != nil {
			return nil, err
		}

		switch key {
		case "name":
			if ch.Name, err = t.next(); err != nil {
				return nil, err
			}
		case "data":
			if ch.Data, err = parseData(t, frames); err != nil {
				return nil, err
			}
		case "data_rle":
			if ch.Data, err = parseDataRLE(t, frames); err != nil {
				return nil, err
			}
		case "lefttype":
			if ch.LeftType, err = t.next(); err != nil {
				return nil, err
			}
		case "righttype":
			if ch.RightType, err = t.next(); err != nil {
				return nil, err
			}
		case "default":
			if ch.Default, err = t.next(); err != nil {
				return nil, err
			}
		default:
			// unknown keys carry one value
			if _, err := t.next(); err != nil {
				return nil, err
			}
		}
	}

	if ch.Name == "" {
		return nil, t.errorf("track without name")
	}
	if ch.Data == nil {
		ch.Data = make([]float32, frames)
	}
	ch.updateRange()

	return ch, nil
}

func parseData(t *tokenizer, frames int) ([]float32, error) {
	data := make([]float32, 0, min(frames, preallocLimit))
	for len(data) < frames {
		v, err := t.float()
		if err != nil {
			return nil, err
		}
		data = append(data, v)
	}

	return data, nil
}

// parseDataRLE reads run-length encoded samples: "@n v" repeats v n times, a
// plain number is a single sample.
func parseDataRLE(t *tokenizer, frames int) ([]float32, error) {
	data := make([]float32, 0, min(frames, preallocLimit))
	for len(data) < frames {
		tok, err := t.next()
		if err != nil {
			return nil, err
		}

		if run, ok := strings.CutPrefix(tok, "@"); ok {
			n, err := t.parseInt(run)
			if err != nil {
				return nil, err
			}
			if n < 0 || len(data)+n > frames {
				return nil, t.errorf("run of %d overflows %d frames", n, frames)
			}
			v, err := t.float()
			if err != nil {
				return nil, err
			}
			for range n {
				data = append(data, v)
			}

			continue
		}

		v, err := t.parseFloat(tok)
		if err != nil {
			return nil, err
		}
		data = append(data, v)
	}

	return data, nil
}

func parseQuatChannels(t *tokenizer, clip *Clip) error {
	n, err := t.int()
	if err != nil {
		return err
	}
	if n < 0 {
		return t.errorf("negative quaternion count %d", n)
	}

	clip.QuatChannels = make([]QuatChannels, 0, min(n, preallocLimit))
	for range n {
		var q QuatChannels
		for _, dst := range []*int{&q.X, &q.Y, &q.Z} {
			if *dst, err = t.int(); err != nil {
				return err
			}
		}
		clip.QuatChannels = append(clip.QuatChannels, q)
	}

	return nil
}

// Load reads and parses the text clip at path.
// The clip name is the file name without its extension.
//
// Returns:
//   - *Clip: the parsed clip
//   - error: ErrFileNotFound if path does not exist, or any Parse error
func Load(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrFileNotFound, path)
		}

		return nil, fmt.Errorf("open clip: %w", err)
	}
	defer f.Close()

	clip, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	clip.Path = path
	clip.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return clip, nil
}
