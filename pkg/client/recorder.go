package client

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Yunpeng-J/zipf/pkg/workload"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// RecordFile returns the path accesses of a load run are recorded to.
func RecordFile(dir string) string {
	return filepath.Join(dir, "load", "accesses.txt")
}

// Recorder writes accesses from a buffered channel in the background,
// each line holding "<unix nanos> <seq> <index> <key>".
type Recorder struct {
	buffer chan string
	f      *os.File
	w      *bufio.Writer
	wg     sync.WaitGroup
	logger *log.Logger
}

func NewRecorder(dir string, buffer int, logger *log.Logger) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Join(dir, "load"), os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "create record directory")
	}
	f, err := os.Create(RecordFile(dir))
	if err != nil {
		return nil, errors.Wrap(err, "create record file")
	}
	rec := &Recorder{
		buffer: make(chan string, buffer),
		f:      f,
		w:      bufio.NewWriter(f),
		logger: logger,
	}
	rec.wg.Add(1)
	go rec.run()
	return rec, nil
}

func (rec *Recorder) run() {
	defer rec.wg.Done()
	for line := range rec.buffer {
		if _, err := rec.w.WriteString(line); err != nil {
			rec.logger.Errorf("record access failed: %v", err)
		}
	}
}

func (rec *Recorder) Record(a workload.Access) {
	rec.buffer <- fmt.Sprintf("%d %d %d %s\n", time.Now().UnixNano(), a.Seq, a.Index, a.Key)
}

// Close drains pending lines and closes the file. Record must not be
// called afterwards.
func (rec *Recorder) Close() error {
	close(rec.buffer)
	rec.wg.Wait()
	if err := rec.w.Flush(); err != nil {
		rec.f.Close()
		return errors.Wrap(err, "flush record file")
	}
	return errors.Wrap(rec.f.Close(), "close record file")
}
