package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/todo-knk/xibalba/internal/domain"
)

var (
	ErrInvalidMagic       = errors.New("invalid replay magic")
	ErrUnsupportedVersion = errors.New("unsupported replay version")
)

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	return LoadFile(path)
}

// LoadFile читает запись по произвольному пути.
func LoadFile(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSession(bufio.NewReader(f))
}

// ReadSession декодирует сессию, записанную WriteSession.
func ReadSession(r io.Reader) (*domain.ReplaySession, error) {
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, header.Magic[:])
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, header.Version, Version1)
	}
	if header.ActionCount < 0 {
		return nil, fmt.Errorf("negative action count: %d", header.ActionCount)
	}

	session := &domain.ReplaySession{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Depth:     int(header.Depth),
		Actions:   make([]domain.ReplayAction, 0, header.ActionCount),
	}

	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		act := domain.ReplayAction{
			Turn:    int(ah.Turn),
			Action:  domain.ActionType(ah.ActionType),
			Payload: json.RawMessage{},
		}
		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("action %d payload: %w", i, err)
			}
		}

		session.Actions = append(session.Actions, act)
	}

	return session, nil
}
