package hwio

func GetBit8(v uint8, n uint) bool {
	return v&(1<<n) != 0
}

func SetBit8(v *uint8, n uint) {
	*v |= 1 << n
}

func ClearBit8(v *uint8, n uint) {
	*v &^= 1 << n
}
