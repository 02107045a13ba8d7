package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"

	"scam-radar/ai"
	"scam-radar/domain"
	"scam-radar/normalize"
	"scam-radar/ratelimit"
	"scam-radar/sink"
	"scam-radar/watchlist"
)

// Fixed replies for the three non-completed outcomes and the advisory
// building blocks for completed ones.
const (
	replyRateLimited = "⚠ Too many requests. Please try again later."
	replyEmptyInput  = "Please send a text describing the suspicious message."
	replyDegraded    = "⚠ Error analyzing the message."

	advisoryScamHeader  = "⚠ This message looks suspicious."
	advisoryLegitHeader = "✅ This message appears legitimate."
	advisoryNoCodes     = "Do NOT share verification codes."
	advisoryNoLinks     = "Do NOT click unknown links."
	advisoryBlock       = "Consider blocking the sender."
)

// ClassifierService runs the live classification pipeline:
// rate check, normalization, vectorization, scoring, reply, audit.
type ClassifierService struct {
	limiter    *ratelimit.SlidingWindow
	normalizer normalize.Normalizer
	vectorizer *ai.Vectorizer
	scorer     *ai.Scorer
	watchlist  *watchlist.Watchlist
	recorder   sink.Recorder
	log        *slog.Logger
}

func NewClassifierService(
	limiter *ratelimit.SlidingWindow,
	vectorizer *ai.Vectorizer,
	scorer *ai.Scorer,
	wl *watchlist.Watchlist,
	recorder sink.Recorder,
	log *slog.Logger,
) *ClassifierService {
	return &ClassifierService{
		limiter:    limiter,
		normalizer: normalize.Serving(),
		vectorizer: vectorizer,
		scorer:     scorer,
		watchlist:  wl,
		recorder:   recorder,
		log:        log,
	}
}

// Classify runs one message through the pipeline and always reaches a
// terminal outcome. It never panics and never fails the process: scoring
// problems degrade to a fixed reply, audit problems are logged and dropped.
func (s *ClassifierService) Classify(message domain.Message) domain.Verdict {
	if !s.limiter.Admit(message.Sender, message.At) {
		return domain.Verdict{Outcome: domain.RejectedRateLimit, Reply: replyRateLimited}
	}

	cleaned := s.normalizer.Apply(message.Text)
	if cleaned == "" {
		return domain.Verdict{Outcome: domain.RejectedEmptyInput, Reply: replyEmptyInput}
	}

	score, err := s.scorer.Score(s.vectorizer.Transform(cleaned))
	if err != nil {
		s.log.Error("Scoring failed",
			"sender_hash", HashSender(message.Sender),
			"err", err,
		)
		return domain.Verdict{Outcome: domain.ScoringFailure, Reply: replyDegraded}
	}

	info := whatlanggo.Detect(message.Text)
	language := info.Lang.Iso6391()
	hits := s.watchlist.Match(message.Text)

	verdict := domain.Verdict{
		Outcome:       domain.Completed,
		Reply:         buildAdvisory(score, hits),
		Label:         score.Label,
		Probability:   score.Probability,
		Language:      language,
		WatchlistHits: hits,
	}

	// Best effort: the reply is already decided, a broken audit trail
	// must not surface to the sender.
	err = s.recorder.Record(sink.Interaction{
		ID:          uuid.New(),
		SenderHash:  HashSender(message.Sender),
		Text:        message.Text,
		Label:       score.Label,
		Probability: score.Probability,
		Language:    language,
		At:          message.At,
	})
	if err != nil {
		s.log.Warn("Failed to record interaction", "err", err)
	}

	return verdict
}

// buildAdvisory renders the human-readable reply: risk framing, the numeric
// probability to two decimals, then safety guidance for scams or reassurance
// for legitimate messages.
func buildAdvisory(score domain.Score, watchlistHits []string) string {
	var lines []string
	if score.Label == domain.LabelScam {
		lines = append(lines,
			advisoryScamHeader,
			fmt.Sprintf("Risk score: %.2f", score.Probability),
			advisoryNoCodes,
			advisoryNoLinks,
			advisoryBlock,
		)
		if len(watchlistHits) > 0 {
			lines = append(lines, "Known scam phrases detected: "+strings.Join(watchlistHits, ", "))
		}
	} else {
		lines = append(lines,
			advisoryLegitHeader,
			fmt.Sprintf("Risk score: %.2f", score.Probability),
		)
	}
	return strings.Join(lines, "\n")
}

// HashSender derives the pseudonymous sender identity stored in the audit
// trail: SHA-256, hex, truncated to 16 characters.
func HashSender(sender string) string {
	sum := sha256.Sum256([]byte(sender))
	return hex.EncodeToString(sum[:])[:16]
}
