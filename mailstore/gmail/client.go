package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/poiesic/mailidx/mailstore"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const user = "me"

// scopes covers everything the authorized client is used for: the mail
// search itself plus the publisher lookup sheet, so a single token file
// serves both services.
var scopes = []string{
	gmailapi.GmailReadonlyScope,
	"https://www.googleapis.com/auth/spreadsheets.readonly",
}

// Client implements mailstore.ThreadSource against the Gmail API.
type Client struct {
	srv        *gmailapi.Service
	httpClient *http.Client
	labelNames map[string]string // label id -> display name, loaded lazily
	logger     *slog.Logger
}

var _ mailstore.ThreadSource = (*Client)(nil)

// NewClient builds a Gmail-backed thread source from an OAuth client secret
// file and a cached token file. If the token file is missing, the
// authorization-code flow is run interactively on stdin.
func NewClient(ctx context.Context, credentialsPath, tokenPath string) (*Client, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}

	httpClient, err := oauthClient(ctx, oauthConfig, tokenPath)
	if err != nil {
		return nil, err
	}

	srv, err := gmailapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}

	return &Client{
		srv:        srv,
		httpClient: httpClient,
		logger:     slog.Default().With("component", "gmail"),
	}, nil
}

// HTTPClient returns the authorized HTTP client so sibling Google services
// can reuse the same token.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func oauthClient(ctx context.Context, config *oauth2.Config, tokenPath string) (*http.Client, error) {
	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = tokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, tok); err != nil {
			return nil, err
		}
	}
	return config.Client(ctx, tok), nil
}

func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}
	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// Search lists every thread matching the subject prefix with activity at or
// after the lower bound, fetching each thread in full.
func (c *Client) Search(ctx context.Context, subjectPrefix string, after time.Time) ([]mailstore.Thread, error) {
	query := fmt.Sprintf("subject:%q", subjectPrefix)
	if !after.IsZero() {
		query += fmt.Sprintf(" after:%d", after.Unix())
	}
	c.logger.Debug("searching threads", "query", query)

	var threads []mailstore.Thread
	pageToken := ""
	for {
		call := c.srv.Users.Threads.List(user).Q(query)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("thread list failed: %w", err)
		}

		for _, stub := range resp.Threads {
			full, err := c.srv.Users.Threads.Get(user, stub.Id).Format("full").Context(ctx).Do()
			if err != nil {
				// One unfetchable thread does not abort the search.
				c.logger.Warn("unable to fetch thread", "thread", stub.Id, "err", err)
				continue
			}
			threads = append(threads, c.convertThread(ctx, full))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return threads, nil
}

func (c *Client) convertThread(ctx context.Context, t *gmailapi.Thread) mailstore.Thread {
	thread := mailstore.Thread{ID: t.Id}

	// Union of message label ids, first-seen order. The publisher resolver
	// is first-match, so ordering must be stable.
	seen := map[string]bool{}
	var labelIDs []string
	for _, msg := range t.Messages {
		thread.Messages = append(thread.Messages, c.convertMessage(msg))
		for _, id := range msg.LabelIds {
			if !seen[id] {
				seen[id] = true
				labelIDs = append(labelIDs, id)
			}
		}
	}
	thread.Labels = c.labelNamesFor(ctx, labelIDs)
	return thread
}

func (c *Client) convertMessage(msg *gmailapi.Message) mailstore.Message {
	out := mailstore.Message{
		Timestamp: msg.InternalDate / 1000, // InternalDate is epoch millis
		Headers:   map[string]string{},
	}
	if msg.Payload == nil {
		return out
	}
	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			out.Subject = header.Value
		case "From", "To", "Cc", "Bcc":
			out.Headers[header.Name] = header.Value
		}
	}
	out.Sender = out.Headers["From"]
	out.Recipient = out.Headers["To"]
	out.Body = plainTextBody(msg.Payload)
	return out
}

// plainTextBody walks the MIME tree for the first decodable text/plain part.
func plainTextBody(payload *gmailapi.MessagePart) string {
	if payload.MimeType == "text/plain" && payload.Body != nil && payload.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(payload.Body.Data)
		if err == nil {
			return string(data)
		}
	}
	for _, part := range payload.Parts {
		mimeType := strings.ToLower(part.MimeType)
		if strings.HasPrefix(mimeType, "text/") || strings.HasPrefix(mimeType, "multipart/") {
			if body := plainTextBody(part); body != "" {
				return body
			}
		}
	}
	return ""
}

// labelNamesFor maps label ids to display names, loading the account's label
// list once per client. Lookup failures degrade to the raw ids.
func (c *Client) labelNamesFor(ctx context.Context, ids []string) []string {
	if c.labelNames == nil {
		c.labelNames = map[string]string{}
		resp, err := c.srv.Users.Labels.List(user).Context(ctx).Do()
		if err != nil {
			c.logger.Warn("unable to list labels", "err", err)
		} else {
			for _, label := range resp.Labels {
				c.labelNames[label.Id] = label.Name
			}
		}
	}

	var names []string
	for _, id := range ids {
		if name, ok := c.labelNames[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, id)
		}
	}
	return names
}
