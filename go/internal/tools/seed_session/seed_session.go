package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/waxgig/crateplay/go/clients/crateplay"
	"github.com/waxgig/crateplay/go/internal/game/session"
	"github.com/waxgig/crateplay/go/internal/models"
)

// triviaPrompt mirrors the payload a host builds in the console: a question
// with the answer fields the jumbotron must never see pre-reveal.
type triviaPrompt struct {
	Question        string   `json:"question"`
	Artist          string   `json:"artist"`
	Title           string   `json:"title"`
	Answer          string   `json:"answer"`
	AcceptedAnswers []string `json:"accepted_answers"`
}

func main() {
	// 1) Build a demo trivia session: 3 rounds, 4 calls each
	faker := gofakeit.New(0)

	rounds := []session.RoundSpec{
		{Category: "60s Soul", CallsInRound: 4},
		{Category: "70s Funk", CallsInRound: 4},
		{Category: "80s Synth", CallsInRound: 4},
	}

	var calls []session.CallSpec
	for i := 0; i < 12; i++ {
		artist := faker.Name()
		title := fmt.Sprintf("%s %s", faker.HipsterWord(), faker.Word())
		prompt := triviaPrompt{
			Question:        fmt.Sprintf("Which label released %q?", title),
			Artist:          artist,
			Title:           title,
			Answer:          faker.Company(),
			AcceptedAnswers: []string{faker.Company(), faker.Company()},
		}
		data, err := json.Marshal(prompt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal prompt: %v\n", err)
			os.Exit(1)
		}
		calls = append(calls, session.CallSpec{Prompt: data})
	}

	req := session.CreateSessionRequest{
		GameType:  models.GameTypeTrivia,
		TeamNames: []string{"Crate Diggers", "Dead Wax Society", "The 45s"},
		Rounds:    rounds,
		Calls:     calls,
		Pacing: models.PacingSettings{
			ResleeveSec: 15,
			LocateSec:   20,
			CueSec:      15,
			BufferSec:   10,
		},
		Visibility: models.VisibilityFlags{
			ShowArtist:        false,
			ShowTitle:         false,
			ShowLeaderboard:   true,
			ShowRoundCategory: true,
		},
	}

	// 2) Post it through the shared client
	client := crateplay.NewClient(os.Getenv("API_URL"))
	created, err := client.CreateSession(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create session: %v\n", err)
		os.Exit(1)
	}

	// 3) Print summary
	fmt.Printf(
		"Session seed complete: id=%s code=%s (%d rounds, %d calls, %d teams)\n",
		created.SessionID, created.Code, len(rounds), len(calls), len(req.TeamNames),
	)
}
