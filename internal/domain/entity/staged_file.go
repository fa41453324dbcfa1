package entity

// StagedFile is a photo selected by the user and held until it is uploaded
type StagedFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// EffectiveSize is the declared size, or the length of the content when no
// size was declared
func (f *StagedFile) EffectiveSize() int64 {
	if f.Size > 0 {
		return f.Size
	}
	return int64(len(f.Data))
}
