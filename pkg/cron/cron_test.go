package cron

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
)

func TestCronLogger(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	cl := cronLogger{logger}
	cl.Info("tick")
	cl.Error(errors.New("boom"), "reload")
	is.Equal(buf.String(), "DEBU tick\nERRO reload err=boom\n")
}

func TestSchedulerAddRemove(t *testing.T) {
	is := is.New(t)
	s := NewScheduler(context.TODO())
	id, err := s.AddFunc("noop", "* * * * *", func() {})
	is.NoErr(err)
	is.Equal(len(s.Entries()), 1)
	s.Remove(id)
	is.Equal(len(s.Entries()), 0)
}

func TestSchedulerInvalidSpec(t *testing.T) {
	is := is.New(t)
	s := NewScheduler(context.TODO())
	_, err := s.AddFunc("broken", "every now and then", func() {})
	is.True(err != nil)
}
