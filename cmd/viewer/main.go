package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"

	"watchroom/infrastructure/ws"
)

// Config drives the CLI session, all overridable from the environment.
type Config struct {
	ServerURL     string `envconfig:"VIEWER_SERVER_URL" default:"http://localhost:8080"`
	Room          string `envconfig:"VIEWER_ROOM" default:"lobby"`
	JoinCode      string `envconfig:"VIEWER_JOIN_CODE" default:""`
	ParticipantID string `envconfig:"VIEWER_PARTICIPANT_ID" default:""`
	DisplayName   string `envconfig:"VIEWER_DISPLAY_NAME" default:"viewer"`
	Colours       bool   `envconfig:"VIEWER_COLOURS" default:"true"`
}

// The viewer is a terminal client for one room: it prints the event
// stream as it arrives and turns stdin lines into intents. Plain lines
// post messages; /commands drive presence, history and the share
// round-trip.
func main() {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if config.ParticipantID == "" {
		config.ParticipantID = uuid.NewString()
	}

	token, err := issueToken(config)
	if err != nil {
		log.Fatalf("Token request failed: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(config.ServerURL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("Websocket dial failed: %v", err)
	}
	defer conn.Close()

	fmt.Printf("Joined %q as %s. Type a message, or /who /history /share /grant /deny /stop /ack /presence /search /quit\n",
		config.Room, config.DisplayName)

	done := make(chan struct{})
	go readLoop(conn, config.Colours, done)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-stop:
			return
		case <-done:
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.TrimSpace(line) == "/quit" {
				return
			}
			if err := send(conn, line); err != nil {
				log.Printf("Send failed: %v", err)
				return
			}
		}
	}
}

func issueToken(config Config) (string, error) {
	body, err := json.Marshal(map[string]string{
		"room":           config.Room,
		"join_code":      config.JoinCode,
		"participant_id": config.ParticipantID,
		"display_name":   config.DisplayName,
	})
	if err != nil {
		return "", err
	}

	resp, err := http.Post(config.ServerURL+"/tokens", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		Token   string `json:"token"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server said %d: %s", resp.StatusCode, out.Message)
	}
	return out.Token, nil
}

// send maps one stdin line to its intent frame.
func send(conn *websocket.Conn, line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")

	switch cmd {
	case "":
		return nil
	case "/who":
		return writeFrame(conn, ws.IntentWho, nil)
	case "/history":
		return writeFrame(conn, ws.IntentHistoryGet, nil)
	case "/share":
		return writeFrame(conn, ws.IntentShareStart, nil)
	case "/grant":
		ticket, handle, _ := strings.Cut(rest, " ")
		return writeFrame(conn, ws.IntentShareGranted, ws.ShareGrantedPayload{Ticket: ticket, Handle: handle})
	case "/deny":
		ticket, reason, _ := strings.Cut(rest, " ")
		return writeFrame(conn, ws.IntentShareDenied, ws.ShareDeniedPayload{Ticket: ticket, Reason: reason})
	case "/stop":
		return writeFrame(conn, ws.IntentShareStop, nil)
	case "/ack":
		return writeFrame(conn, ws.IntentShareAck, nil)
	case "/presence":
		return writeFrame(conn, ws.IntentPresenceSet, ws.PresenceSetPayload{Presence: rest})
	case "/search":
		return writeFrame(conn, ws.IntentSearch, ws.SearchPayload{Query: rest})
	default:
		return writeFrame(conn, ws.IntentMessagePost, ws.MessagePostPayload{Body: line})
	}
}

func writeFrame(conn *websocket.Conn, frameType string, payload any) error {
	frame, err := ws.NewFrame(frameType, payload)
	if err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}

func readLoop(conn *websocket.Conn, colours bool, done chan<- struct{}) {
	defer close(done)

	paint := func(style color.Style, text string) string {
		if colours {
			return style.Render(text)
		}
		return text
	}
	sender := color.New(color.FgGreen)
	notice := color.New(color.FgYellow)
	share := color.New(color.FgCyan)
	failure := color.New(color.FgRed)

	for {
		var frame ws.Frame
		if err := conn.ReadJSON(&frame); err != nil {
			fmt.Println("Connection closed")
			return
		}

		switch frame.Type {
		case "message.appended":
			var m ws.MessagePayload
			if json.Unmarshal(frame.Payload, &m) == nil {
				fmt.Printf("[%d] %s: %s\n", m.Sequence, paint(sender, m.SenderID), m.Body)
			}
		case "participant.joined", "participant.left", "presence.changed":
			var p ws.ParticipantPayload
			if json.Unmarshal(frame.Payload, &p) == nil {
				fmt.Println(paint(notice, fmt.Sprintf("* %s (%s) %s", p.DisplayName, p.Presence, frame.Type)))
			}
		case "share.state":
			var s ws.SharePayload
			if json.Unmarshal(frame.Payload, &s) == nil {
				line := fmt.Sprintf("* share %s", s.State)
				if s.OwnerID != "" {
					line += " owner=" + s.OwnerID
				}
				if s.Reason != "" {
					line += " (" + s.Reason + ")"
				}
				fmt.Println(paint(share, line))
			}
		case ws.TypeShareTicket:
			var t ws.ShareTicketPayload
			if json.Unmarshal(frame.Payload, &t) == nil {
				fmt.Println(paint(share, "* ticket "+t.Ticket+" (confirm with /grant "+t.Ticket+" <handle>)"))
			}
		case ws.TypeHistory:
			var messages []ws.MessagePayload
			if json.Unmarshal(frame.Payload, &messages) == nil {
				for _, m := range messages {
					fmt.Printf("[%d] %s: %s\n", m.Sequence, paint(sender, m.SenderID), m.Body)
				}
			}
		case ws.TypeWho:
			var participants []ws.ParticipantPayload
			if json.Unmarshal(frame.Payload, &participants) == nil {
				renderWho(participants)
			}
		case ws.TypeSearch:
			var result ws.SearchResultPayload
			if json.Unmarshal(frame.Payload, &result) == nil {
				fmt.Printf("%d match(es)\n", result.Total)
				for _, hit := range result.Hits {
					fmt.Printf("[%d] %s: %s\n", hit.Sequence, paint(sender, hit.Sender), hit.Body)
				}
			}
		case ws.TypeError:
			var e ws.ErrorPayload
			if json.Unmarshal(frame.Payload, &e) == nil {
				fmt.Println(paint(failure, "! "+e.Message))
			}
		}
	}
}

func renderWho(participants []ws.ParticipantPayload) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Presence", "Joined"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, p := range participants {
		table.Append([]string{p.ID, p.DisplayName, p.Presence, p.JoinedAt.Format("15:04:05")})
	}
	table.Render()
}
