package scoring

import (
	"github.com/google/uuid"
	"github.com/waxgig/crateplay/go/internal/models"
)

// Judgment is the host's (or assistant's) verdict for one team on one call.
// AwardedPoints, when set, overrides the computed value entirely. The bonus
// markers only matter when the game's policy pays for them.
type Judgment struct {
	TeamID              uuid.UUID `json:"team_id"`
	Correct             bool      `json:"correct"`
	AwardedPoints       *int      `json:"awarded_points,omitempty"`
	AdjacentDecade      bool      `json:"adjacent_decade,omitempty"`
	NamedOriginalArtist bool      `json:"named_original_artist,omitempty"`
	GaveValidReason     bool      `json:"gave_valid_reason,omitempty"`
	DifficultyTier      int       `json:"difficulty_tier,omitempty"`
}

// ScoringPolicy computes the points one judgment is worth under a game's
// rules.
type ScoringPolicy interface {
	ComputeAward(j Judgment) int
}

// pointsPolicy covers every current game type: a base award for a correct
// answer plus whichever bonuses the game pays for. adjacentCredit is the one
// rule applied to incorrect answers (decade guessing gives half credit for
// landing one decade off).
type pointsPolicy struct {
	base           int
	tierBonus      int
	artistBonus    int
	reasonBonus    int
	adjacentCredit int
}

func (p pointsPolicy) ComputeAward(j Judgment) int {
	if !j.Correct {
		if p.adjacentCredit > 0 && j.AdjacentDecade {
			return p.adjacentCredit
		}
		return 0
	}
	points := p.base
	if p.tierBonus > 0 && j.DifficultyTier > 0 {
		points += j.DifficultyTier * p.tierBonus
	}
	if p.artistBonus > 0 && j.NamedOriginalArtist {
		points += p.artistBonus
	}
	if p.reasonBonus > 0 && j.GaveValidReason {
		points += p.reasonBonus
	}
	return points
}

var policies = map[models.GameType]ScoringPolicy{
	models.GameTypeTrivia:          pointsPolicy{base: 10, tierBonus: 5},
	models.GameTypeMusicBingo:      pointsPolicy{base: 1},
	models.GameTypeNeedleDrop:      pointsPolicy{base: 10, artistBonus: 5},
	models.GameTypeDecadeGuess:     pointsPolicy{base: 10, adjacentCredit: 5},
	models.GameTypeLyricChallenge:  pointsPolicy{base: 15},
	models.GameTypeBracket:         pointsPolicy{base: 10},
	models.GameTypeCoverOrOriginal: pointsPolicy{base: 10, artistBonus: 5},
	models.GameTypeEraSort:         pointsPolicy{base: 10, tierBonus: 5},
	models.GameTypeFirstLine:       pointsPolicy{base: 15, tierBonus: 5},
	models.GameTypeHotTake:         pointsPolicy{base: 10, reasonBonus: 5},
	models.GameTypeLabelLore:       pointsPolicy{base: 10, tierBonus: 5},
	models.GameTypeSpeedSpin:       pointsPolicy{base: 10},
}

// PolicyFor looks up the scoring policy for a game type.
func PolicyFor(gameType models.GameType) (ScoringPolicy, bool) {
	p, ok := policies[gameType]
	return p, ok
}
