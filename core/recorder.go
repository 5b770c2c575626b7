package core

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// Recorder tees a session's input and output into a single transcript
// writer so interactive sessions can be reviewed later. The mutex keeps
// reads and writes from interleaving mid-chunk.
type Recorder struct {
	mu  sync.Mutex
	out io.Writer
}

func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// Input wraps the session reader; everything the user types lands in the
// transcript interleaved with the output that prompted it.
func (r *Recorder) Input(rd io.Reader) io.Reader {
	return &recorderReader{rec: r, rd: rd}
}

// Output wraps a session writer.
func (r *Recorder) Output(w io.Writer) io.Writer {
	return &recorderWriter{rec: r, w: w}
}

func (r *Recorder) append(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.out.Write(p)
}

type recorderReader struct {
	rec *Recorder
	rd  io.Reader
}

func (r *recorderReader) Read(p []byte) (int, error) {
	n, err := r.rd.Read(p)
	if n > 0 {
		r.rec.append(p[:n])
	}
	return n, err
}

type recorderWriter struct {
	rec *Recorder
	w   io.Writer
}

func (w *recorderWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if n > 0 {
		w.rec.append(p[:n])
	}
	return n, err
}

// OpenTranscript creates a timestamped transcript file under dir, creating
// the directory if needed.
func OpenTranscript(fs afero.Fs, dir string) (afero.File, error) {
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s.log", time.Now().Format(time.RFC3339))
	return fs.Create(fmt.Sprintf("%s/%s", dir, name))
}
