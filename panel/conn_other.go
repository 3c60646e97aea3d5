//go:build !linux

package panel

func OpenSPI(_ *SPIConfig) (Conn, error) {
	return nil, ErrNotSupported
}
