package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	db "github.com/mama165/sdk-go/database"
	"github.com/stretchr/testify/suite"

	"watchroom/auth"
	"watchroom/domain/event"
	"watchroom/infrastructure/ws"
	"watchroom/internal"
	"watchroom/observability"
	"watchroom/projection"
	"watchroom/repositories"
	"watchroom/runtime"
	"watchroom/runtime/workers"
	"watchroom/services"
	"watchroom/sink"
)

const frameTimeout = 3 * time.Second

// BaseSuite boots the whole stack in-process: badger and bluge in a
// temp dir, the orchestrator pipeline, and the HTTP handler behind an
// httptest server. Tests talk to it the way a real client would.
type BaseSuite struct {
	suite.Suite
	Config Config

	server       *httptest.Server
	orchestrator *runtime.Orchestrator
	cancel       context.CancelFunc
	cleanup      func()
}

func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	_, logger, badgerDB, blugeWriter, err := db.SetupBenchmark(s.T().TempDir())
	s.Require().NoError(err)
	s.cleanup = func() { db.CleanupDB(badgerDB, blugeWriter) }

	charReplacement, err := internal.CharacterRune("*")
	s.Require().NoError(err)

	telemetryChan := make(chan event.Event, 64)
	sup := workers.NewSupervisor(logger, telemetryChan, 50*time.Millisecond)
	registry := runtime.NewRegistry()
	monitoring := observability.NewMonitoringManager(logger)
	archive := repositories.NewMessageRepository(badgerDB, logger, nil)
	searchIndex := repositories.NewSearchIndex(blugeWriter, logger, 10, 25)

	s.orchestrator = runtime.NewOrchestrator(
		logger, sup, registry, monitoring, telemetryChan,
		64, time.Second,
		charReplacement,
		30*time.Second, time.Second,
	)
	s.orchestrator.Add(
		sink.NewArchiveSink(archive, logger),
		sink.NewSearchSink(searchIndex, logger),
		projection.NewTimeline(),
	)

	tokens := auth.NewTokenManager("e2e-secret", time.Hour)
	service := services.NewRoomService(s.orchestrator, tokens, archive, searchIndex)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.Require().NoError(s.orchestrator.Start(ctx))

	mux := http.NewServeMux()
	ws.NewHandler(logger, service, tokens, monitoring).Register(mux)
	s.server = httptest.NewServer(mux)
}

func (s *BaseSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.orchestrator != nil {
		s.orchestrator.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.cleanup != nil {
		s.cleanup()
	}
}

// Step prints a colorized header for a scenario step in logs
func (s *BaseSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// PostJSON sends a JSON body and returns the decoded response status and payload.
func (s *BaseSuite) PostJSON(path string, body any) (*http.Response, []byte) {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	resp, err := http.Post(s.server.URL+path, "application/json", bytes.NewReader(raw))
	s.Require().NoError(err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	s.Require().NoError(err)

	if s.Config.DebugJSON {
		s.T().Logf("POST %s -> %d\n%s", path, resp.StatusCode, out.String())
	}
	return resp, out.Bytes()
}

// IssueToken requests a room token over the HTTP surface.
func (s *BaseSuite) IssueToken(room, joinCode, participantID, displayName string) string {
	resp, body := s.PostJSON("/tokens", map[string]string{
		"room":           room,
		"join_code":      joinCode,
		"participant_id": participantID,
		"display_name":   displayName,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var out struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(body, &out))
	return out.Token
}

// Dial opens a websocket session with the given token.
func (s *BaseSuite) Dial(token string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	return conn
}

// Send writes an intent frame on the connection.
func (s *BaseSuite) Send(conn *websocket.Conn, frameType string, payload any) {
	frame, err := ws.NewFrame(frameType, payload)
	s.Require().NoError(err)
	s.Require().NoError(conn.WriteJSON(frame))
}

// WaitFrame reads frames until one of the wanted type arrives, skipping
// interleaved events. Fails the test after frameTimeout.
func (s *BaseSuite) WaitFrame(conn *websocket.Conn, frameType string) ws.Frame {
	deadline := time.Now().Add(frameTimeout)
	for {
		s.Require().NoError(conn.SetReadDeadline(deadline))
		var frame ws.Frame
		err := conn.ReadJSON(&frame)
		s.Require().NoError(err, "waiting for frame %q", frameType)

		if s.Config.DebugJSON {
			s.T().Logf("FRAME %s\n%s", frame.Type, string(frame.Payload))
		}
		if frame.Type == frameType {
			return frame
		}
	}
}

// Decode unmarshals a frame payload into out.
func (s *BaseSuite) Decode(frame ws.Frame, out any) {
	s.Require().NoError(json.Unmarshal(frame.Payload, out))
}
