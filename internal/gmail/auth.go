package gmail

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailv1 "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jvillar/filtersquash/internal/config"
	"github.com/jvillar/filtersquash/internal/output"
	"github.com/jvillar/filtersquash/internal/squash"
)

// newService builds an authenticated Gmail service scoped to the filter
// settings API. The client secret comes from the configured credentials
// file; the token comes from the config's token store, falling back to an
// interactive browser flow when it is missing or unusable.
func newService(ctx context.Context, cfg *config.Config, out *output.Formatter) (*gmailv1.Service, error) {
	credPath, err := cfg.CredentialsPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(credPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read client secret at %s: %v", squash.ErrAuth, credPath, err)
	}

	oc, err := google.ConfigFromJSON(b, gmailv1.GmailSettingsBasicScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse oauth client secret: %v", squash.ErrAuth, err)
	}

	tok, err := CachedToken(cfg)
	switch {
	case errors.Is(err, config.ErrNoToken):
		tok = nil
	case err != nil:
		// The store has something but it isn't a token. Re-authenticate
		// rather than fail; the fresh token overwrites the bad entry.
		out.Warningf("Cached token is unreadable (%v), re-authenticating.", err)
		tok = nil
	}

	if tok == nil || (!tok.Valid() && tok.RefreshToken == "") {
		tok, err = tokenFromWeb(ctx, oc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", squash.ErrAuth, err)
		}
		if err := saveToken(cfg, tok); err != nil {
			return nil, fmt.Errorf("save token: %w", err)
		}
	}

	svc, err := gmailv1.NewService(ctx, option.WithHTTPClient(oc.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("%w: create gmail service: %v", squash.ErrAuth, err)
	}
	return svc, nil
}

// CachedToken loads and parses the stored OAuth token without touching
// the network. config.ErrNoToken means nothing is cached yet.
func CachedToken(cfg *config.Config) (*oauth2.Token, error) {
	data, err := cfg.LoadToken()
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse cached token: %w", err)
	}
	return &tok, nil
}

func saveToken(cfg *config.Config, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return cfg.SaveToken(data)
}

// tokenFromWeb runs the installed-app consent flow: a loopback HTTP
// server captures the redirect, with manual paste of the code (or the
// full redirect URL) as fallback for headless hosts. Prompts go straight
// to stderr so they survive --quiet and --json.
func tokenFromWeb(ctx context.Context, oc *oauth2.Config) (*oauth2.Token, error) {
	type result struct {
		code string
		err  error
	}
	resCh := make(chan result, 1)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err == nil {
		defer ln.Close()
		port := ln.Addr().(*net.TCPAddr).Port
		oc.RedirectURL = fmt.Sprintf("http://127.0.0.1:%d/", port)

		mux := http.NewServeMux()
		srv := &http.Server{
			ReadHeaderTimeout: 5 * time.Second,
			Handler:           mux,
		}
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Missing 'code' parameter", http.StatusBadRequest)
				return
			}
			fmt.Fprintln(w, "Authentication complete. You can close this window.")
			select {
			case resCh <- result{code: code}:
			default:
			}
			go func() { _ = srv.Shutdown(context.Background()) }()
		})
		go func() { _ = srv.Serve(ln) }()

		authURL := oc.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
		fmt.Fprintln(os.Stderr, "Open this URL in your browser to authorize filtersquash:")
		fmt.Fprintln(os.Stderr, authURL)
		fmt.Fprintf(os.Stderr, "Waiting for redirect on %s ...\n", oc.RedirectURL)

		select {
		case <-ctx.Done():
			_ = srv.Shutdown(context.Background())
			return nil, ctx.Err()
		case r := <-resCh:
			if r.err != nil {
				return nil, r.err
			}
			return exchange(ctx, oc, r.code)
		case <-time.After(120 * time.Second):
			_ = srv.Shutdown(context.Background())
			fmt.Fprintln(os.Stderr, "Timed out waiting for the redirect; falling back to manual paste.")
		}
	}

	// Manual paste fallback.
	authURL := oc.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Fprintln(os.Stderr, "Open this URL in your browser to authorize filtersquash:")
	fmt.Fprintln(os.Stderr, authURL)
	fmt.Fprintln(os.Stderr, "Paste the auth code or the full redirect URL here, then press Enter.")
	fmt.Fprint(os.Stderr, "> ")

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 1024), 1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read auth code: %w", err)
		}
		return nil, errors.New("empty authorization code")
	}
	input := strings.TrimSpace(sc.Text())
	if input == "" {
		return nil, errors.New("empty authorization code")
	}

	code := input
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		u, err := url.Parse(input)
		if err != nil {
			return nil, fmt.Errorf("parse redirect URL: %w", err)
		}
		c := u.Query().Get("code")
		if c == "" {
			return nil, errors.New("no 'code' parameter found in pasted URL")
		}
		code = c
	}
	return exchange(ctx, oc, code)
}

func exchange(ctx context.Context, oc *oauth2.Config, code string) (*oauth2.Token, error) {
	tok, err := oc.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	return tok, nil
}
