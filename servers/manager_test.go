package servers

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"otpbot/logger"
)

type stubServer struct {
	name     string
	startErr error
	started  bool
	stopped  bool
}

func (s *stubServer) Name() string { return s.name }
func (s *stubServer) Start() error {
	if s.startErr != nil {
		return s.startErr
	}
	s.started = true
	return nil
}
func (s *stubServer) Stop() error {
	s.stopped = true
	return nil
}

func TestStartAllRollsBackOnFailure(t *testing.T) {
	ok := &stubServer{name: "ok"}
	bad := &stubServer{name: "bad", startErr: errors.New("port in use")}

	m := NewManager(logger.Discard())
	m.AddServer(ok)
	m.AddServer(bad)

	err := m.StartAll()
	assert.ErrorContains(t, err, "start server bad")
	assert.True(t, ok.stopped)
	assert.False(t, bad.stopped)
}

func TestStopAllOnlyStopsStarted(t *testing.T) {
	a := &stubServer{name: "a"}
	m := NewManager(logger.Discard())
	m.AddServer(a)
	m.StopAll()
	assert.False(t, a.stopped)

	assert.NoError(t, m.StartAll())
	m.StopAll()
	assert.True(t, a.stopped)
}
