package slack

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/slack-go/slack"
)

// Handler processes recognized user commands and returns reply text.
// *onebotaway.Engine satisfies it.
type Handler interface {
	HandleHi() string
	HandleBus(take int) string
	HandleRun() string
	HandleSkip() string
	HandleSchedules() string
}

// Client is the chat delivery collaborator: it pushes messages to channels
// and listens for direct-message commands over RTM.
type Client struct {
	api       *slack.Client
	rtm       *slack.RTM
	botUserID string
}

func New(token string) *Client {
	api := slack.New(token)
	return &Client{api: api, rtm: api.NewRTM()}
}

// Send posts text to a channel.
func (c *Client) Send(channel, text string) error {
	_, _, err := c.api.PostMessage(channel, slack.MsgOptionText(text, false))
	return err
}

// Listen connects to Slack and dispatches direct-message commands to h until
// ctx is cancelled.
func (c *Client) Listen(ctx context.Context, h Handler) {
	go c.rtm.ManageConnection()
	for {
		select {
		case <-ctx.Done():
			_ = c.rtm.Disconnect()
			return
		case ev, ok := <-c.rtm.IncomingEvents:
			if !ok {
				return
			}
			switch data := ev.Data.(type) {
			case *slack.ConnectedEvent:
				c.botUserID = data.Info.User.ID
				log.Printf("connected to slack as %s", data.Info.User.Name)
			case *slack.MessageEvent:
				c.handleMessage(data, h)
			case *slack.RTMError:
				log.Printf("slack rtm error: %s", data.Error())
			case *slack.InvalidAuthEvent:
				log.Fatalf("slack auth failed; check SLACK_TOKEN")
			}
		}
	}
}

func (c *Client) handleMessage(ev *slack.MessageEvent, h Handler) {
	// Plain direct messages from a human only.
	if ev.SubType != "" || ev.User == "" || ev.User == c.botUserID {
		return
	}
	if !strings.HasPrefix(ev.Channel, "D") {
		return
	}
	reply, ok := commandReply(ev.Text, h)
	if !ok {
		return
	}
	c.rtm.SendMessage(c.rtm.NewOutgoingMessage(reply, ev.Channel))
}

// commandReply parses one message and dispatches the recognized command.
// Unrecognized messages produce no reply.
func commandReply(text string, h Handler) (string, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if len(fields) == 0 {
		return "", false
	}
	switch fields[0] {
	case "hi":
		return h.HandleHi(), true
	case "bus":
		take := 0
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				take = n
			}
		}
		return h.HandleBus(take), true
	case "run":
		return h.HandleRun(), true
	case "skip":
		return h.HandleSkip(), true
	case "schedule":
		return h.HandleSchedules(), true
	default:
		return "", false
	}
}
