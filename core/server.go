package core

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/gliderlabs/ssh"
	"github.com/juju/ratelimit"
	gossh "golang.org/x/crypto/ssh"

	"github.com/catshell/catshell/core/config"
	"github.com/catshell/catshell/core/logger"
)

// Server serves the shell over SSH. Every session gets its own Shell with
// its own in-memory history ring; sessions share nothing but the event log
// and the transcript directory.
type Server struct {
	configuration *config.Configuration
	logger        *logger.Logger
	limiter       *ratelimit.Bucket
	sshServer     *ssh.Server
}

func NewServer(configuration *config.Configuration, logDest io.Writer) (*Server, error) {
	perMinute := configuration.SSH.SessionsPerMinute
	if perMinute < 1 {
		perMinute = 60
	}

	server := &Server{
		configuration: configuration,
		logger:        logger.NewJSONLinesRecorder(logDest),
		limiter:       ratelimit.NewBucketWithRate(float64(perMinute)/60, int64(perMinute)),
	}

	server.sshServer = &ssh.Server{
		Addr: fmt.Sprintf(":%d", configuration.SSH.Port),
		Handler: func(s ssh.Session) {
			server.HandleSession(s)
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			ok := false
			for _, allowed := range configuration.Passwords(ctx.User()) {
				if subtle.ConstantTimeCompare([]byte(password), []byte(allowed)) == 1 {
					ok = true
				}
			}
			return ok
		},
	}

	keyPem, err := configuration.HostKeyPem()
	if err != nil {
		return nil, fmt.Errorf("loading host key: %w", err)
	}
	signer, err := gossh.ParsePrivateKey(keyPem)
	if err != nil {
		return nil, fmt.Errorf("parsing host key: %w", err)
	}
	server.sshServer.AddHostKey(signer)

	return server, nil
}

func (srv *Server) ListenAndServe() error {
	return srv.sshServer.ListenAndServe()
}

func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.sshServer.Shutdown(ctx)
}

// HandleSession runs one interactive shell on top of an SSH session.
func (srv *Server) HandleSession(s ssh.Session) error {
	if srv.limiter.TakeAvailable(1) == 0 {
		fmt.Fprintln(s, "too many sessions, try again later")
		return s.Exit(254)
	}

	sessionLogger := srv.logger.NewSession()
	sessionLogger.RecordEvent(logger.Event{
		SessionStart: &logger.SessionStart{
			Username:   s.User(),
			RemoteAddr: s.RemoteAddr().String(),
		},
	})
	defer sessionLogger.RecordEvent(logger.Event{SessionEnd: &logger.SessionEnd{}})

	transcript, err := OpenTranscript(srv.configuration.TranscriptFs(), config.TranscriptDirName)
	if err != nil {
		return err
	}
	defer transcript.Close()
	rec := NewRecorder(transcript)

	ptyInfo, winch, isPty := s.Pty()
	windowWidth := ptyInfo.Window.Width
	go func() {
		for window := range winch {
			windowWidth = window.Width
		}
	}()

	shell, err := NewShell(ShellOptions{
		Prompt:      srv.configuration.Prompt,
		HistorySize: srv.configuration.HistorySize,
		Stdin:       rec.Input(s),
		Stdout:      rec.Output(s),
		Stderr:      rec.Output(s.Stderr()),
		IsTerminal:  isPty,
		Width: func() int {
			return windowWidth
		},
		Log: sessionLogger,
	})
	if err != nil {
		return err
	}
	defer shell.Close()

	shell.Greet(srv.configuration.Motd)
	return shell.Run()
}
