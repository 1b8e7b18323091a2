package profile

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"nine-empires/internal/game"
)

// fileTerrain mirrors one terrain entry in the YAML schema.
type fileTerrain struct {
	Name       string  `mapstructure:"name"`
	Food       float64 `mapstructure:"food"`
	Production float64 `mapstructure:"production"`
	Defense    float64 `mapstructure:"defense"`
}

// LoadTerrain reads the land terrain list from path. The sea entry is
// implicit and always prepended. Missing or malformed files fall back to the
// built-in catalog whole, not per entry: a half-valid terrain set would
// silently shift every terrain id after the bad entry.
func LoadTerrain(path string, log *zap.Logger) *game.TerrainCatalog {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		log.Debug("terrain file not found, using defaults", zap.Error(err))
		return game.DefaultTerrainCatalog()
	}

	var entries []fileTerrain
	if err := v.UnmarshalKey("terrain", &entries); err != nil {
		log.Warn("terrain file malformed, using defaults", zap.Error(err))
		return game.DefaultTerrainCatalog()
	}
	if len(entries) == 0 {
		return game.DefaultTerrainCatalog()
	}

	land := make([]game.Terrain, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "" || entry.Food < 0 || entry.Production < 0 || entry.Defense < 0 {
			log.Warn("invalid terrain entry, using defaults", zap.String("name", entry.Name))
			return game.DefaultTerrainCatalog()
		}
		land = append(land, game.Terrain{
			Name:       entry.Name,
			Food:       entry.Food,
			Production: entry.Production,
			Defense:    entry.Defense,
		})
	}
	return game.NewTerrainCatalog(land)
}
