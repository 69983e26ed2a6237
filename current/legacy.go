package current

// GetCurrent fills dst like Read and reports whether every channel
// converted. Kept for callers of the boolean API.
func (s *Sensor) GetCurrent(dst []uint32) bool {
	_, err := s.Read(dst)
	return err == nil
}
