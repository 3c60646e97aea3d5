package panel

import (
	"github.com/BeatGlow/cvdsim/conn"
)

// OpenSPI opens the spidev bus described by config.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if err := checkSPIConfig(config); err != nil {
		return nil, err
	}

	bus, err := conn.OpenSPI(config.Bus, config.Device)
	if err != nil {
		return nil, err
	}
	if err = bus.SetMode(conn.SPIMode(config.Mode)); err != nil {
		_ = bus.Close()
		return nil, err
	}
	if err = bus.SetMaxSpeed(int(config.SpeedHz)); err != nil {
		_ = bus.Close()
		return nil, err
	}
	return newSPIConn(bus, config), nil
}
