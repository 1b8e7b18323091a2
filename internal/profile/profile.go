// Package profile loads AI behavior profiles and terrain definitions from
// YAML files. Configuration is never fatal: missing files or malformed
// fields fall back to the built-in defaults so a bare install always runs.
package profile

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"nine-empires/internal/game"
)

// Names lists the profile files shipped with the game. Any empire control
// string outside this set resolves to "default" at decision time.
var Names = []string{"default", "land", "seatrade"}

// fileProfile mirrors the on-disk YAML schema.
type fileProfile struct {
	FoodWeight       float64 `mapstructure:"food_weight"`
	ProductionWeight float64 `mapstructure:"production_weight"`
	HateWeight       float64 `mapstructure:"hate_weight"`
	DiplomacyWeight  float64 `mapstructure:"diplomacy_weight"`
	Friendliness     float64 `mapstructure:"friendliness"`
	Chance           float64 `mapstructure:"chance"`
	TrustWeight      float64 `mapstructure:"trust_weight"`
	RemoteWeight     float64 `mapstructure:"remote_weight"`
	MinTrust         float64 `mapstructure:"min_trust"`

	TradeThreshold  float64 `mapstructure:"trade_threshold"`
	FriendThreshold float64 `mapstructure:"friend_threshold"`
	AllyThreshold   float64 `mapstructure:"ally_threshold"`

	MinMorale float64 `mapstructure:"min_morale"`
	MinTax    float64 `mapstructure:"min_tax"`

	FearDiplomacy []float64 `mapstructure:"fear_diplomacy"`

	WarMilitarySpending   float64 `mapstructure:"war_military_spending"`
	PeaceMilitarySpending float64 `mapstructure:"peace_military_spending"`

	BuildingChance     float64 `mapstructure:"building_chance"`
	ChurchPriority     float64 `mapstructure:"church_priority"`
	MillPriority       float64 `mapstructure:"mill_priority"`
	NavyPriority       float64 `mapstructure:"navy_priority"`
	UniversityPriority float64 `mapstructure:"university_priority"`

	SciencePriorities []float64 `mapstructure:"science_priorities"`
}

// LoadAIProfile reads one named profile from dir. Every field defaults to
// the built-in profile, so a partial file only overrides what it names and a
// missing or unreadable file yields the defaults unchanged.
func LoadAIProfile(dir, name string, log *zap.Logger) *game.AIProfile {
	def := game.DefaultAIProfile()

	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	setDefaults(v, def)

	if err := v.ReadInConfig(); err != nil {
		log.Debug("ai profile not found, using defaults",
			zap.String("profile", name), zap.Error(err))
	}

	var f fileProfile
	if err := v.Unmarshal(&f); err != nil {
		log.Warn("ai profile malformed, using defaults",
			zap.String("profile", name), zap.Error(err))
		def.Name = name
		return def
	}

	p := &game.AIProfile{
		Name:                  name,
		FoodWeight:            f.FoodWeight,
		ProductionWeight:      f.ProductionWeight,
		HateWeight:            f.HateWeight,
		DiplomacyWeight:       f.DiplomacyWeight,
		Friendliness:          f.Friendliness,
		Chance:                f.Chance,
		TrustWeight:           f.TrustWeight,
		RemoteWeight:          f.RemoteWeight,
		MinTrust:              f.MinTrust,
		TradeThreshold:        f.TradeThreshold,
		FriendThreshold:       f.FriendThreshold,
		AllyThreshold:         f.AllyThreshold,
		MinMorale:             f.MinMorale,
		MinTax:                f.MinTax,
		WarMilitarySpending:   f.WarMilitarySpending,
		PeaceMilitarySpending: f.PeaceMilitarySpending,
		BuildingChance:        f.BuildingChance,
		ChurchPriority:        f.ChurchPriority,
		MillPriority:          f.MillPriority,
		NavyPriority:          f.NavyPriority,
		UniversityPriority:    f.UniversityPriority,
	}
	copy(p.FearDiplomacy[:], f.FearDiplomacy)
	copy(p.SciencePriorities[:], f.SciencePriorities)
	return p
}

// LoadAll loads every shipped profile name from dir.
func LoadAll(dir string, log *zap.Logger) map[string]*game.AIProfile {
	profiles := make(map[string]*game.AIProfile, len(Names))
	for _, name := range Names {
		profiles[name] = LoadAIProfile(dir, name, log)
	}
	return profiles
}

func setDefaults(v *viper.Viper, def *game.AIProfile) {
	v.SetDefault("food_weight", def.FoodWeight)
	v.SetDefault("production_weight", def.ProductionWeight)
	v.SetDefault("hate_weight", def.HateWeight)
	v.SetDefault("diplomacy_weight", def.DiplomacyWeight)
	v.SetDefault("friendliness", def.Friendliness)
	v.SetDefault("chance", def.Chance)
	v.SetDefault("trust_weight", def.TrustWeight)
	v.SetDefault("remote_weight", def.RemoteWeight)
	v.SetDefault("min_trust", def.MinTrust)
	v.SetDefault("trade_threshold", def.TradeThreshold)
	v.SetDefault("friend_threshold", def.FriendThreshold)
	v.SetDefault("ally_threshold", def.AllyThreshold)
	v.SetDefault("min_morale", def.MinMorale)
	v.SetDefault("min_tax", def.MinTax)
	v.SetDefault("fear_diplomacy", def.FearDiplomacy[:])
	v.SetDefault("war_military_spending", def.WarMilitarySpending)
	v.SetDefault("peace_military_spending", def.PeaceMilitarySpending)
	v.SetDefault("building_chance", def.BuildingChance)
	v.SetDefault("church_priority", def.ChurchPriority)
	v.SetDefault("mill_priority", def.MillPriority)
	v.SetDefault("navy_priority", def.NavyPriority)
	v.SetDefault("university_priority", def.UniversityPriority)
	v.SetDefault("science_priorities", def.SciencePriorities[:])
}
