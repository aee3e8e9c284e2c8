package kaisou

// bitmask256 is the component set of an archetype, one bit per component ID.
type bitmask256 [4]uint64

func (m *bitmask256) set(bit uint8) {
	m[bit>>6] |= uint64(1) << (bit & 63)
}

func (m *bitmask256) unset(bit uint8) {
	m[bit>>6] &^= uint64(1) << (bit & 63)
}

// contains reports whether every bit of sub is also set in m.
func (m bitmask256) contains(sub bitmask256) bool {
	return (m[0]&sub[0]) == sub[0] &&
		(m[1]&sub[1]) == sub[1] &&
		(m[2]&sub[2]) == sub[2] &&
		(m[3]&sub[3]) == sub[3]
}

func (m bitmask256) containsBit(bit uint8) bool {
	return m[bit>>6]&(uint64(1)<<(bit&63)) != 0
}
