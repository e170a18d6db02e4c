package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"campushub/internal/database"
	"campushub/internal/models"
	"campushub/internal/repository"
)

func newFAQService(t *testing.T) (*FAQService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewFAQService(repository.NewFAQRepository(&database.DB{DB: db})), mock
}

func faqRows() *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "question", "answer", "keywords", "category"})
	rows.AddRow(int64(1), "How do I register for an event?",
		"Open the event page and press Register.", "register,registration,sign up", "events")
	rows.AddRow(int64(2), "How can I join a club?",
		"Contact the club coordinator.", "club,join club,society", "clubs")
	rows.AddRow(int64(3), "Where can I see placement statistics?",
		"Check the Placements page.", "placement,company,ctc", "placements")
	return rows
}

func TestFAQService_Answer(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		message     string
		wantMatched bool
		wantAnswer  string
	}{
		{
			name:        "keyword hit picks the right entry",
			message:     "how do i REGISTER for techfest?",
			wantMatched: true,
			wantAnswer:  "Open the event page and press Register.",
		},
		{
			name:        "punctuation does not block matching",
			message:     "placement!!! stats???",
			wantMatched: true,
			wantAnswer:  "Check the Placements page.",
		},
		{
			name:        "club question beats weaker overlaps",
			message:     "what do I do to join a club on campus",
			wantMatched: true,
			wantAnswer:  "Contact the club coordinator.",
		},
		{
			name:        "unrelated question falls back",
			message:     "what is the meaning of life",
			wantMatched: false,
			wantAnswer:  faqFallbackAnswer,
		},
		{
			name:        "short stopwords never score",
			message:     "do i an it to",
			wantMatched: false,
			wantAnswer:  faqFallbackAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newFAQService(t)
			mock.ExpectQuery(`SELECT id, question, answer, keywords, category`).
				WillReturnRows(faqRows())

			resp, err := svc.Answer(ctx, tt.message)
			require.NoError(t, err)
			require.Equal(t, tt.wantMatched, resp.Matched)
			require.Equal(t, tt.wantAnswer, resp.Answer)
		})
	}
}

func TestScoreEntry(t *testing.T) {
	entry := &models.FAQEntry{
		Question: "How do I register for an event?",
		Keywords: "register,registration",
	}

	msg := normalizeText("How do I register for the event")
	score := scoreEntry(entry, msg, significantWords(msg))

	// "register" and "registration"... only "register" is contained as a
	// substring of the message. Of the shared words "how", "register"
	// and "for", only words longer than two characters count.
	require.GreaterOrEqual(t, score, faqMatchThreshold)
}

func TestNormalizeText(t *testing.T) {
	require.Equal(t, "whats the wifi password", normalizeText("  What's the Wi-Fi password?! "))
	require.Equal(t, "", normalizeText("?!..."))
}
