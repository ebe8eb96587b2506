package main

import (
	"sync"

	"github.com/pkg/errors"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/flyto/prefabs"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// posePrefab has the shape of a scene file's camera block so the copied
// text can be pasted straight into prefabs/scene.yaml.
type posePrefab struct {
	Camera struct {
		Position prefabs.Vec3 `yaml:"position"`
		LookAt   prefabs.Vec3 `yaml:"look_at"`
	} `yaml:"camera"`
}

func marshalPose(eye, lookAt prefabs.Vec3) ([]byte, error) {
	var p posePrefab
	p.Camera.Position = eye
	p.Camera.LookAt = lookAt
	return yaml.Marshal(p)
}

func copyPose(eye, lookAt prefabs.Vec3) ([]byte, error) {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return nil, errors.Wrap(clipboardErr, "clipboard unavailable")
	}

	data, err := marshalPose(eye, lookAt)
	if err != nil {
		return nil, errors.Wrap(err, "marshal pose")
	}
	clipboard.Write(clipboard.FmtText, data)
	return data, nil
}
