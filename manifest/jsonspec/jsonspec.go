// Package jsonspec describes the CurseForge modpack manifest.json file.
package jsonspec

// Manifest, MinecraftInstance and File remember the keys they were
// decoded from, including ones they do not model, so that re-encoding
// a manifest keeps its metadata and key order.
type Manifest struct {
	Minecraft MinecraftInstance
	Files     []File

	raw object
}

type MinecraftInstance struct {
	Version    string
	ModLoaders []ModLoader

	raw object
}

type ModLoader struct {
	ID      string `json:"id"`
	Primary bool   `json:"primary"`
}

type File struct {
	ProjectID int
	FileID    int
	Required  bool

	// extra is set when the entry has keys besides the ones above.
	extra *object
}

const (
	keyMinecraft  = "minecraft"
	keyFiles      = "files"
	keyVersion    = "version"
	keyModLoaders = "modLoaders"
	keyProjectID  = "projectID"
	keyFileID     = "fileID"
	keyRequired   = "required"
)

func (m *Manifest) UnmarshalJSON(b []byte) error {
	var mm Manifest
	if err := mm.raw.UnmarshalJSON(b); err != nil {
		return err
	}
	if err := mm.raw.decode(keyMinecraft, &mm.Minecraft); err != nil {
		return err
	}
	if err := mm.raw.decode(keyFiles, &mm.Files); err != nil {
		return err
	}
	*m = mm
	return nil
}

func (m Manifest) MarshalJSON() ([]byte, error) {
	raw := m.raw.clone()
	if err := raw.set(keyMinecraft, m.Minecraft); err != nil {
		return nil, err
	}
	files := m.Files
	if files == nil {
		files = []File{}
	}
	if err := raw.set(keyFiles, files); err != nil {
		return nil, err
	}
	return raw.MarshalJSON()
}

func (mc *MinecraftInstance) UnmarshalJSON(b []byte) error {
	var v MinecraftInstance
	if err := v.raw.UnmarshalJSON(b); err != nil {
		return err
	}
	if err := v.raw.decode(keyVersion, &v.Version); err != nil {
		return err
	}
	if err := v.raw.decode(keyModLoaders, &v.ModLoaders); err != nil {
		return err
	}
	*mc = v
	return nil
}

func (mc MinecraftInstance) MarshalJSON() ([]byte, error) {
	raw := mc.raw.clone()
	if err := raw.set(keyVersion, mc.Version); err != nil {
		return nil, err
	}
	if mc.ModLoaders != nil || raw.has(keyModLoaders) {
		if err := raw.set(keyModLoaders, mc.ModLoaders); err != nil {
			return nil, err
		}
	}
	return raw.MarshalJSON()
}

func (f *File) UnmarshalJSON(b []byte) error {
	var raw object
	if err := raw.UnmarshalJSON(b); err != nil {
		return err
	}
	var v File
	if err := raw.decode(keyProjectID, &v.ProjectID); err != nil {
		return err
	}
	if err := raw.decode(keyFileID, &v.FileID); err != nil {
		return err
	}
	if err := raw.decode(keyRequired, &v.Required); err != nil {
		return err
	}
	for _, k := range raw.keys {
		switch k {
		case keyProjectID, keyFileID, keyRequired:
			continue
		}
		v.extra = &raw
		break
	}
	*f = v
	return nil
}

func (f File) MarshalJSON() ([]byte, error) {
	var raw object
	if f.extra != nil {
		raw = f.extra.clone()
	}
	if err := raw.set(keyProjectID, f.ProjectID); err != nil {
		return nil, err
	}
	if err := raw.set(keyFileID, f.FileID); err != nil {
		return nil, err
	}
	if err := raw.set(keyRequired, f.Required); err != nil {
		return nil, err
	}
	return raw.MarshalJSON()
}

// Index returns the position of the first entry for projectID or -1.
func (m *Manifest) Index(projectID int) int {
	for i, f := range m.Files {
		if f.ProjectID == projectID {
			return i
		}
	}
	return -1
}
