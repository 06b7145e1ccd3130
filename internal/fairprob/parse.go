package fairprob

import (
	"strconv"
	"strings"
)

// asInt coerces a loosely-typed JSON value to an int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// extractClockSeconds parses a game clock from the live-data details.
// Handles "MM:SS", bare seconds, and {"minutes": m, "seconds": s} under
// several key spellings.
func extractClockSeconds(details map[string]any) (int, bool) {
	for _, key := range []string{"time_remaining", "clock", "timeRemaining"} {
		if secs, ok := parseClock(details[key]); ok {
			return secs, true
		}
	}
	if game, ok := details["game"].(map[string]any); ok {
		if secs, ok := parseClock(game["clock"]); ok {
			return secs, true
		}
	}
	return 0, false
}

func parseClock(v any) (int, bool) {
	switch c := v.(type) {
	case nil:
		return 0, false
	case float64:
		return int(c), true
	case int:
		return c, true
	case map[string]any:
		m, mok := asInt(c["minutes"])
		s, sok := asInt(c["seconds"])
		if mok && sok {
			return m*60 + s, true
		}
		return 0, false
	case string:
		parts := strings.Split(strings.TrimSpace(c), ":")
		if len(parts) != 2 {
			return 0, false
		}
		m, merr := strconv.Atoi(parts[0])
		s, serr := strconv.Atoi(parts[1])
		if merr != nil || serr != nil {
			return 0, false
		}
		return m*60 + s, true
	default:
		return 0, false
	}
}

// extractScores pulls YES-side and NO-side scores out of a loosely
// structured details payload. Schemas vary by sport and provider, so
// several patterns are tried: direct yes/no keys, then home/away keys
// mapped through the market's team-name hints.
func extractScores(details map[string]any, yesHint, noHint string) (scoreYes, scoreNo int, ok bool) {
	directPairs := [][2]string{
		{"yes_score", "no_score"},
		{"yesScore", "noScore"},
		{"team_yes_score", "team_no_score"},
	}
	for _, pair := range directPairs {
		y, yok := asInt(details[pair[0]])
		n, nok := asInt(details[pair[1]])
		if yok && nok {
			return y, n, true
		}
	}

	homeScore, awayScore, found := extractHomeAway(details)
	if !found {
		return 0, 0, false
	}

	homeName, awayName := extractTeamNames(details)
	if hintMatches(yesHint, homeName) {
		return homeScore, awayScore, true
	}
	if hintMatches(yesHint, awayName) {
		return awayScore, homeScore, true
	}

	return 0, 0, false
}

// extractHomeAway tries the home/away key patterns, including nested
// {"score": n} objects.
func extractHomeAway(details map[string]any) (home, away int, ok bool) {
	pairs := [][2]string{
		{"home_score", "away_score"},
		{"homeScore", "awayScore"},
		{"homePoints", "awayPoints"},
		{"home", "away"},
	}
	for _, pair := range pairs {
		h, hok := scoreValue(details[pair[0]])
		a, aok := scoreValue(details[pair[1]])
		if hok && aok {
			return h, a, true
		}
	}
	return 0, 0, false
}

func scoreValue(v any) (int, bool) {
	if m, ok := v.(map[string]any); ok {
		return asInt(m["score"])
	}
	return asInt(v)
}

func extractTeamNames(details map[string]any) (home, away string) {
	home, _ = details["home_team"].(string)
	if home == "" {
		home, _ = details["homeTeam"].(string)
	}
	if home == "" {
		if m, ok := details["home"].(map[string]any); ok {
			home, _ = m["name"].(string)
		}
	}

	away, _ = details["away_team"].(string)
	if away == "" {
		away, _ = details["awayTeam"].(string)
	}
	if away == "" {
		if m, ok := details["away"].(map[string]any); ok {
			away, _ = m["name"].(string)
		}
	}
	return home, away
}

func hintMatches(hint, name string) bool {
	if hint == "" || name == "" {
		return false
	}
	h := strings.ToLower(hint)
	n := strings.ToLower(name)
	return strings.Contains(h, n) || strings.Contains(n, h)
}
