package systems

import (
	"encoding/json"
	"fmt"

	cfg "github.com/automoto/rallycore/config"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi/ecs"
)

const tuningKey = "tuning"

// TuningStore keeps the user-adjusted tuning block between runs.
type TuningStore struct {
	m *gdata.Manager
}

// OpenTuningStore opens the per-user data directory for appName.
func OpenTuningStore(appName string) (*TuningStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("opening data dir: %w", err)
	}
	return &TuningStore{m: m}, nil
}

// Load returns the saved tuning. ok is false when nothing has been saved yet.
func (s *TuningStore) Load() (t cfg.TuningConfig, ok bool, err error) {
	data, err := s.m.LoadItem(tuningKey)
	if err != nil {
		return t, false, fmt.Errorf("loading tuning: %w", err)
	}
	if data == nil {
		// No saved tuning yet, use defaults
		return t, false, nil
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return t, false, fmt.Errorf("parsing saved tuning: %w", err)
	}
	return t, true, nil
}

func (s *TuningStore) Save(t cfg.TuningConfig) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("serializing tuning: %w", err)
	}
	if err := s.m.SaveItem(tuningKey, data); err != nil {
		return fmt.Errorf("saving tuning: %w", err)
	}
	return nil
}

// Apply loads any saved tuning into cfg.Tuning.
func (s *TuningStore) Apply() (bool, error) {
	t, ok, err := s.Load()
	if err != nil || !ok {
		return false, err
	}
	cfg.Tuning = t
	return true, nil
}

// SaveTuningSystem returns a system that saves cfg.Tuning when the save key is
// pressed.
func SaveTuningSystem(store *TuningStore) ecs.System {
	return func(e *ecs.ECS) {
		if store == nil || !GetAction(getOrCreateInput(e), cfg.ActionSaveTuning).JustPressed {
			return
		}
		td, ok := trackData(e)
		if !ok {
			return
		}
		if err := store.Save(cfg.Tuning); err != nil {
			td.Log.Warn().Err(err).Msg("could not save tuning")
			return
		}
		td.Log.Info().Msg("tuning saved")
	}
}
