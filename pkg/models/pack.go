package models

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Pack holds the wireframe models loaded from a model directory. Nil
// entries mean the file was absent; callers fall back to the built-in
// procedural shapes.
type Pack struct {
	Tank     *Mesh
	Missile  *Mesh
	Saucer   *Mesh
	Obstacle *Mesh
	Pyramid  *Mesh
}

// Footprints the loaded models are rescaled to, in world units,
// matching the built-in shapes they replace. Obstacles and pyramids
// are normalized to a unit footprint and scaled per instance.
const (
	tankFootprint    = 16.0
	missileFootprint = 15.0
	saucerFootprint  = 14.0
	unitFootprint    = 1.0
)

// LoadPack loads the recognized model files from dir, normalizing each
// to the footprint of the shape it replaces. Missing files are not an
// error; a file that exists but fails to parse is.
func LoadPack(dir string) (*Pack, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("model dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("model dir %s: not a directory", dir)
	}

	pack := &Pack{}
	if pack.Tank, err = loadOptional(dir, "tank.glb", tankFootprint); err != nil {
		return nil, err
	}
	if pack.Missile, err = loadOptional(dir, "missile.glb", missileFootprint); err != nil {
		return nil, err
	}
	if pack.Saucer, err = loadOptional(dir, "saucer.glb", saucerFootprint); err != nil {
		return nil, err
	}
	if pack.Obstacle, err = loadOptional(dir, "obstacle.glb", unitFootprint); err != nil {
		return nil, err
	}
	if pack.Pyramid, err = loadOptional(dir, "pyramid.glb", unitFootprint); err != nil {
		return nil, err
	}
	return pack, nil
}

// loadOptional loads a model file if present, normalized to the given
// footprint. A missing file returns (nil, nil); a file that fails to
// parse is an error.
func loadOptional(dir, name string, footprint float64) (*Mesh, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	mesh, err := LoadGLB(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	mesh.NormalizeFootprint(footprint)
	return mesh, nil
}
