package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/todo-knk/xibalba/internal/domain"
)

const (
	MagicHeader string = `XBRP` // 4 байта
	Version1    uint32 = 1

	// Extension — расширение файлов записи.
	Extension = ".xbrp"
)

// ReplayFileHeader — точное представление заголовка файла.
// binary.Write пишет его целиком: тут только массивы и числа.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	Depth       int32   // 4 байта
	ActionCount int32   // 4 байта
}

// ActionHeader — заголовок каждой записи действия.
type ActionHeader struct {
	Turn       int32  // 4
	ActionType uint8  // 1
	_          uint8  // 1, выравнивание
	PayloadLen uint16 // 2
}

// ReplayService сохраняет и читает записи партий в каталоге SaveDir.
type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет сессию в новый файл и возвращает его путь.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%d_d%d_%d%s", session.Seed, session.Depth, session.Timestamp, Extension)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := WriteSession(bw, session); err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// WriteSession кодирует сессию в w.
func WriteSession(w io.Writer, s *domain.ReplaySession) error {
	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		Depth:       int32(s.Depth),
		ActionCount: int32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, act := range s.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("action %d: payload too long: %d", i, payloadLen)
		}

		actHeader := ActionHeader{
			Turn:       int32(act.Turn),
			ActionType: uint8(act.Action),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
