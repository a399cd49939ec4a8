// Package tally derives per-contestant vote counts and the annotated voter
// roster. Nothing here is cached or stored; every call reads fresh.
package tally

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mvgcolleges/voting-go/internal/ballot"
	"github.com/mvgcolleges/voting-go/internal/contest"
)

// unknownContestant labels votes whose contestant id no longer resolves.
// Soft delete makes that impossible in normal operation, but out-of-band
// sheet edits happen.
const unknownContestant = "Unknown"

// ContestantResult is one contestant with its derived vote count.
type ContestantResult struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Votes       int    `json:"votes"`
}

// Results is the payload of the public results view. Entries follow the
// directory's listing order; ranking is a presentation concern.
type Results struct {
	TotalVotes int                `json:"totalVotes"`
	Results    []ContestantResult `json:"results"`
}

// VoterRecord is one vote annotated with the contestant's name.
type VoterRecord struct {
	ballot.Vote
	ContestantName string `json:"contestantName"`
}

// Engine joins the contestant directory with the vote ledger.
type Engine struct {
	directory *contest.Directory
	ledger    *ballot.Ledger
}

// NewEngine creates a tally engine over the given directory and ledger.
func NewEngine(directory *contest.Directory, ledger *ballot.Ledger) *Engine {
	return &Engine{directory: directory, ledger: ledger}
}

// Results computes vote counts for all active contestants, including those
// with zero votes. TotalVotes counts every vote row, even ones referencing
// contestants hidden from the listing.
func (e *Engine) Results(ctx context.Context) (*Results, error) {
	contestants, votes, err := e.fetchBoth(ctx, false)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(contestants))
	for i := range votes {
		counts[votes[i].ContestantID]++
	}

	results := make([]ContestantResult, 0, len(contestants))
	for _, c := range contestants {
		results = append(results, ContestantResult{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			ImageURL:    c.ImageURL,
			Votes:       counts[c.ID],
		})
	}

	return &Results{TotalVotes: len(votes), Results: results}, nil
}

// VotersWithNames returns every vote annotated with the contestant's name.
// Inactive contestants are included in the lookup so historic votes still
// resolve after a deactivation.
func (e *Engine) VotersWithNames(ctx context.Context) ([]VoterRecord, error) {
	contestants, votes, err := e.fetchBoth(ctx, true)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(contestants))
	for _, c := range contestants {
		names[c.ID] = c.Name
	}

	records := make([]VoterRecord, 0, len(votes))
	for i := range votes {
		name, ok := names[votes[i].ContestantID]
		if !ok {
			name = unknownContestant
		}
		records = append(records, VoterRecord{Vote: votes[i], ContestantName: name})
	}
	return records, nil
}

// fetchBoth reads contestants and votes concurrently; both reads are
// independent and the remote store dominates latency.
func (e *Engine) fetchBoth(ctx context.Context, includeInactive bool) ([]contest.Contestant, []ballot.Vote, error) {
	var (
		contestants []contest.Contestant
		votes       []ballot.Vote
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contestants, err = e.directory.List(gctx, includeInactive)
		return err
	})
	g.Go(func() error {
		var err error
		votes, err = e.ledger.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return contestants, votes, nil
}
