package entity

import "github.com/google/uuid"

var panelNamespace = uuid.MustParse("6f1c2d4e-8a3b-5c7d-9e0f-1a2b3c4d5e6f")

// PanelID is stable for a scene/panel name pair so selections survive a
// scene reload.
func PanelID(scene, panel string) uuid.UUID {
	return uuid.NewSHA1(panelNamespace, []byte(scene+"/"+panel))
}
