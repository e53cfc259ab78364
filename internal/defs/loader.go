// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

var ErrInvalidDefinition = errors.New("invalid definition")

// LoadTowerDefinitions reads the tower configuration file and populates the TowerLibrary.
func LoadTowerDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tower definitions file: %w", err)
	}

	var towerDefs []TowerDefinition
	if err := json.Unmarshal(file, &towerDefs); err != nil {
		return fmt.Errorf("failed to unmarshal tower definitions: %w", err)
	}

	library := make(map[string]TowerDefinition, len(towerDefs))
	for _, def := range towerDefs {
		if def.ID == "" || def.Cost < 0 || def.Health <= 0 {
			return fmt.Errorf("%w: tower %q", ErrInvalidDefinition, def.ID)
		}
		library[def.ID] = def
	}
	TowerLibrary = library

	log.Printf("Loaded %d tower definitions", len(TowerLibrary))
	return nil
}

// LoadEnemyDefinitions reads the enemy configuration file and populates the EnemyLibrary.
func LoadEnemyDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read enemy definitions file: %w", err)
	}

	var enemyDefs []EnemyDefinition
	if err := json.Unmarshal(file, &enemyDefs); err != nil {
		return fmt.Errorf("failed to unmarshal enemy definitions: %w", err)
	}

	library := make(map[string]EnemyDefinition, len(enemyDefs))
	for _, def := range enemyDefs {
		if def.ID == "" || def.Health <= 0 || def.Speed <= 0 {
			return fmt.Errorf("%w: enemy %q", ErrInvalidDefinition, def.ID)
		}
		library[def.ID] = def
	}
	EnemyLibrary = library

	log.Printf("Loaded %d enemy definitions", len(EnemyLibrary))
	return nil
}
