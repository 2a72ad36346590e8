package logic

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// DefaultAliases maps common shorthand to canonical team names
var DefaultAliases = map[string]string{
	// North America
	"c9": "Cloud9", "cloud9": "Cloud9", "cloudnine": "Cloud9",
	"tl": "Team Liquid", "liquid": "Team Liquid", "teamliquid": "Team Liquid",
	"100t": "100 Thieves", "100thieves": "100 Thieves", "thieves": "100 Thieves",
	"eg": "Evil Geniuses", "evilgeniuses": "Evil Geniuses",
	"nrg": "NRG Esports", "sen": "Sentinels", "sentinels": "Sentinels",
	"fq": "FlyQuest", "flyquest": "FlyQuest",
	"tsm": "TSM", "dig": "Dignitas", "dignitas": "Dignitas",

	// Europe
	"g2": "G2 Esports", "g2esports": "G2 Esports",
	"fnc": "Fnatic", "fnatic": "Fnatic",
	"navi": "Natus Vincere", "natusvincere": "Natus Vincere",
	"faze": "FaZe Clan", "fazeclan": "FaZe Clan",
	"vit": "Team Vitality", "vitality": "Team Vitality",
	"nip": "Ninjas in Pyjamas", "ninjasinpyjamas": "Ninjas in Pyjamas",
	"mouz": "MOUZ", "mousesports": "MOUZ",
	"heretics": "Team Heretics", "th": "Team Heretics",
	"kc": "Karmine Corp", "karmine": "Karmine Corp", "kcorp": "Karmine Corp",
	"ence": "ENCE", "astralis": "Astralis", "ast": "Astralis",

	// Asia-Pacific / Americas
	"t1": "T1", "skt": "T1", "sktt1": "T1",
	"geng": "Gen.G", "gen": "Gen.G",
	"drx": "DRX", "prx": "Paper Rex", "paperrex": "Paper Rex",
	"loud": "LOUD", "furia": "FURIA", "lev": "Leviatán", "leviatan": "Leviatán",
	"edg": "EDward Gaming", "edwardgaming": "EDward Gaming",
}

// AliasTable is an immutable name → canonical-name dictionary.
// Keys are stored in aliasKey form (normalized, spaces removed).
type AliasTable struct {
	forward map[string]string
	reverse map[string]string // normalized canonical name → canonical name
	keys    []string
}

// NewAliasTable merges the given tables in order; later tables win.
func NewAliasTable(tables ...map[string]string) *AliasTable {
	t := &AliasTable{
		forward: make(map[string]string),
		reverse: make(map[string]string),
	}
	for _, table := range tables {
		for k, v := range table {
			key := aliasKey(k)
			canonical := strings.TrimSpace(v)
			if key == "" || canonical == "" {
				continue
			}
			t.forward[key] = canonical
		}
	}
	for _, canonical := range t.forward {
		t.reverse[NormalizeInput(canonical)] = canonical
	}
	t.keys = make([]string, 0, len(t.forward))
	for k := range t.forward {
		t.keys = append(t.keys, k)
	}
	sort.Strings(t.keys)
	return t
}

// Forward looks up the canonical name for an input
func (t *AliasTable) Forward(input string) (string, bool) {
	canonical, ok := t.forward[aliasKey(input)]
	return canonical, ok
}

// Reverse reports whether input already is one of the table's canonical names
func (t *AliasTable) Reverse(input string) (string, bool) {
	canonical, ok := t.reverse[NormalizeInput(input)]
	return canonical, ok
}

// Suggestions returns up to n alias keys closest to input by character-set
// similarity, ties broken alphabetically.
func (t *AliasTable) Suggestions(input string, n int) []string {
	key := aliasKey(input)
	ranked := make([]string, len(t.keys))
	copy(ranked, t.keys)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Jaccard(key, ranked[i]) > Jaccard(key, ranked[j])
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Len returns the number of alias keys
func (t *AliasTable) Len() int {
	return len(t.forward)
}

// aliasOverridesKey is the Redis hash holding operator-maintained aliases
const aliasOverridesKey = "team_aliases"

// LoadAliasOverrides reads operator aliases from Redis. Aliases are read-only
// configuration; nothing is written back.
func LoadAliasOverrides(ctx context.Context, rdb RedisClient) (map[string]string, error) {
	if rdb == nil {
		return map[string]string{}, nil
	}
	overrides, err := rdb.HGetAll(ctx, aliasOverridesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("load alias overrides: %w", err)
	}
	return overrides, nil
}
