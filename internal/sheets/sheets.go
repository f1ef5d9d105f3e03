package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"botw/internal/structures"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	submissionRange = "A1:E1"
	rankingRange    = "G1:K2"
)

var (
	ErrMissingCredentialField = errors.New("credentials file is missing client_email or private_key")
	ErrIncompleteRanking      = errors.New("ranking range has a header but no data row")
)

// Service appends submissions with a read-write client and reads rankings with a
// read-only one, both acting as the same service account.
type Service struct {
	writer    *sheets.Service
	reader    *sheets.Service
	sheetID   string
	sheetName string
}

func NewService(ctx context.Context, cfg structures.Config) (*Service, error) {
	writeCreds, err := LoadCredentials(cfg.CredentialsPath, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, err
	}
	readCreds, err := LoadCredentials(cfg.CredentialsPath, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, err
	}

	return newService(ctx, cfg.SheetID, cfg.SheetName,
		[]option.ClientOption{option.WithTokenSource(writeCreds.TokenSource(ctx))},
		[]option.ClientOption{option.WithTokenSource(readCreds.TokenSource(ctx))},
	)
}

func newService(ctx context.Context, sheetID, sheetName string, writeOpts, readOpts []option.ClientOption) (*Service, error) {
	writer, err := sheets.NewService(ctx, writeOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets writer: %w", err)
	}
	reader, err := sheets.NewService(ctx, readOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets reader: %w", err)
	}
	return &Service{writer: writer, reader: reader, sheetID: sheetID, sheetName: sheetName}, nil
}

// LoadCredentials parses a service-account key file for the given scope. The file
// must carry both the service email and the private key.
func LoadCredentials(path, scope string) (*jwt.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.JWTConfigFromJSON(data, scope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if creds.Email == "" || len(creds.PrivateKey) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingCredentialField)
	}
	return creds, nil
}

// CheckCredentials fails when the key file at path cannot back a Service.
func CheckCredentials(path string) error {
	_, err := LoadCredentials(path, sheets.SpreadsheetsScope)
	return err
}

// AppendSubmission adds one row after the existing data, letting Sheets pick the row.
func (s *Service) AppendSubmission(ctx context.Context, sub structures.Submission) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{sub.Row()}}
	_, err := s.writer.Spreadsheets.Values.Append(s.sheetID, s.rangeName(submissionRange), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append submission: %w", err)
	}
	return nil
}

// ReadRankings fetches the header and data rows of the ranking table. An empty
// range yields an empty snapshot and no error.
func (s *Service) ReadRankings(ctx context.Context) (*structures.RankingSnapshot, error) {
	resp, err := s.reader.Spreadsheets.Values.Get(s.sheetID, s.rangeName(rankingRange)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read rankings: %w", err)
	}

	switch len(resp.Values) {
	case 0:
		return &structures.RankingSnapshot{}, nil
	case 1:
		return nil, ErrIncompleteRanking
	}
	return &structures.RankingSnapshot{
		Header: cells(resp.Values[0]),
		Data:   cells(resp.Values[1]),
	}, nil
}

func (s *Service) rangeName(cells string) string {
	return fmt.Sprintf("%s!%s", s.sheetName, cells)
}

func cells(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if str, ok := v.(string); ok {
			out[i] = str
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}

func ExtractSheetID(sheetURL string) (string, error) {
	if sheetURL == "" {
		return "", errors.New("sheet URL cannot be empty")
	}
	// Supports full URLs like https://docs.google.com/spreadsheets/d/<id>/edit
	re := regexp.MustCompile(`^https?://docs\.google\.com/spreadsheets/d/([^/]+)/?`)
	matches := re.FindStringSubmatch(sheetURL)
	if len(matches) == 2 {
		return matches[1], nil
	}
	// Allow providing just the sheet ID.
	if !strings.Contains(sheetURL, "/") {
		return sheetURL, nil
	}
	return "", fmt.Errorf("unable to parse sheet id from URL: %s", sheetURL)
}
