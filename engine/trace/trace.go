package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/sirupsen/logrus"
)

// Recorder captures per-tick observations as JSON lines without stalling the
// tick that produced them: encoding and writing happen on a background worker,
// and a single worker keeps the output in submission order. The recorder does
// not own the writer; callers close files themselves after Flush.
type Recorder interface {
	// Record submits one observation for asynchronous encoding and writing.
	// Records after a write failure are counted and dropped.
	//
	// Parameters:
	//   - sample: any JSON-encodable value; one line per call
	Record(sample any)

	// Flush blocks until every submitted observation has been written.
	Flush()

	// Close flushes pending observations and rejects further records.
	//
	// Returns:
	//   - error: the first encode or write error encountered, if any
	Close() error

	// Err returns the first encode or write error encountered.
	//
	// Returns:
	//   - error: the latched error, or nil
	Err() error

	// Dropped returns how many observations were discarded after a failure
	// or after Close.
	//
	// Returns:
	//   - uint64: the dropped observation count
	Dropped() uint64
}

// recorderImpl is the implementation of the Recorder interface.
type recorderImpl struct {
	mu  sync.Mutex
	log *logrus.Logger

	out io.Writer

	// pool runs the encode-and-write tasks. A single worker preserves
	// submission order in the output.
	pool worker.DynamicWorkerPool

	// wg tracks in-flight tasks so Flush can act as a barrier.
	wg sync.WaitGroup

	// taskID numbers submitted tasks.
	taskID int

	// err latches the first failure; later records are dropped.
	err error

	closed  bool
	dropped uint64

	queueSize int
}

var _ Recorder = &recorderImpl{}

// NewRecorder creates a recorder writing JSON lines to the given writer.
//
// Parameters:
//   - out: destination for the JSON lines
//   - options: functional options to configure the recorder
//
// Returns:
//   - Recorder: the newly created recorder
func NewRecorder(out io.Writer, options ...RecorderBuilderOption) Recorder {
	r := &recorderImpl{
		log:       logrus.StandardLogger(),
		out:       out,
		queueSize: 256,
	}
	for _, option := range options {
		option(r)
	}
	r.pool = worker.NewDynamicWorkerPool(1, r.queueSize, 1*time.Second)
	return r
}

func (r *recorderImpl) Record(sample any) {
	r.mu.Lock()
	if r.closed || r.err != nil {
		r.dropped++
		r.mu.Unlock()
		return
	}
	id := r.taskID
	r.taskID++
	r.wg.Add(1)
	r.mu.Unlock()

	r.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer r.wg.Done()

			line, err := json.Marshal(sample)
			if err != nil {
				r.fail(fmt.Errorf("trace: encode sample: %w", err))
				return nil, nil
			}
			line = append(line, '\n')

			r.mu.Lock()
			_, werr := r.out.Write(line)
			r.mu.Unlock()
			if werr != nil {
				r.fail(fmt.Errorf("trace: write sample: %w", werr))
			}
			return nil, nil
		},
	})
}

func (r *recorderImpl) Flush() {
	r.wg.Wait()
}

func (r *recorderImpl) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.wg.Wait()
	return r.Err()
}

func (r *recorderImpl) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *recorderImpl) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// fail latches the first error and logs it; later failures only count.
func (r *recorderImpl) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	r.err = err
	r.log.Warnf("[Trace] recording stopped: %v", err)
}
