package periph

import "sync"

// SimI2C implements drivers.I2C for host builds and tests, recording the
// last transaction.
type SimI2C struct {
	mu     sync.Mutex
	LastTx struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

func (s *SimI2C) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastTx.Addr = addr
	s.LastTx.W = append([]byte(nil), w...)
	s.LastTx.Rn = len(r)
	return nil
}
