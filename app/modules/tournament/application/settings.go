package tournamentservice

import (
	"context"
	"strings"

	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
)

// SetSetting stores a free-form setting.
func (s *TournamentService) SetSetting(ctx context.Context, key, value string) error {
	return s.withTelemetry(ctx, "SetSetting", func(ctx context.Context) error {
		key = strings.TrimSpace(key)
		if key == "" {
			return ErrEmptySettingKey
		}
		return s.mutate(ctx, func(next *tournamenttypes.State) error {
			next.Settings[key] = value
			return nil
		})
	})
}
