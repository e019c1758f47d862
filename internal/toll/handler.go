package toll

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/tollctl/internal/ledger"
	"github.com/danmuck/tollctl/internal/observability"
)

// MaxMessageBytes caps one request line; anything past it is cut off.
const MaxMessageBytes = 1024

const internalErrorResponse = "ERROR: internal server error"

// handleConn serves exactly one transaction: read one request line, apply it
// to the ledger, write one response line, close. The ledger lock is never
// held across any of the I/O here.
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("remote", remote).Interface("panic", r).Msg("transaction handler panic")
			s.respond(conn, internalErrorResponse)
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	raw, err := readRequest(conn)
	if err != nil {
		// Nothing arrived before the deadline, or the read itself failed:
		// abandon without a response.
		log.Warn().Str("remote", remote).Err(err).Msg("request abandoned")
		return
	}
	if raw == "" {
		return
	}

	tx, err := ParseTransaction(raw)
	if err != nil {
		result := s.rejectParse(conn, remote, err)
		observability.RecordTransaction("INVALID", result, time.Since(start))
		return
	}

	switch tx.Kind {
	case KindEntry:
		s.handleEntry(conn, remote, tx, start)
	case KindExit:
		s.handleExit(conn, remote, tx, start)
	}
}

func (s *Server) handleEntry(conn net.Conn, remote string, tx Transaction, start time.Time) {
	if err := s.ledger.TryEnter(tx.Plate, tx.Point); err != nil {
		if errors.Is(err, ledger.ErrDuplicateEntry) {
			s.respond(conn, fmt.Sprintf("ERROR: Vehicle %s already in highway", tx.Plate))
			log.Error().Str("remote", remote).Str("plate", tx.Plate).Int("point", tx.Point).
				Msg("entry rejected: vehicle already in highway")
			observability.RecordTransaction(string(KindEntry), "duplicate_entry", time.Since(start))
			return
		}
		s.respond(conn, internalErrorResponse)
		log.Error().Str("remote", remote).Str("plate", tx.Plate).Err(err).Msg("entry failed")
		observability.RecordTransaction(string(KindEntry), "internal_error", time.Since(start))
		return
	}

	s.respond(conn, fmt.Sprintf("Vehicle %s entered at point %d", tx.Plate, tx.Point))
	log.Info().Str("remote", remote).Str("plate", tx.Plate).Int("point", tx.Point).
		Msg("vehicle entered highway")
	observability.RecordTransaction(string(KindEntry), "success", time.Since(start))
}

func (s *Server) handleExit(conn net.Conn, remote string, tx Transaction, start time.Time) {
	entryPoint, fee, err := s.ledger.TryExit(tx.Plate, tx.Point)
	if err != nil {
		if errors.Is(err, ledger.ErrVehicleNotFound) {
			s.respond(conn, fmt.Sprintf("ERROR: Vehicle %s not found in highway", tx.Plate))
			log.Error().Str("remote", remote).Str("plate", tx.Plate).Int("point", tx.Point).
				Msg("exit rejected: vehicle not found in highway")
			observability.RecordTransaction(string(KindExit), "unknown_vehicle", time.Since(start))
			return
		}
		s.respond(conn, internalErrorResponse)
		log.Error().Str("remote", remote).Str("plate", tx.Plate).Err(err).Msg("exit failed")
		observability.RecordTransaction(string(KindExit), "internal_error", time.Since(start))
		return
	}

	s.respond(conn, fmt.Sprintf("Vehicle %s exited at point %d. Fee: %s", tx.Plate, tx.Point, FormatFee(fee)))
	log.Info().Str("remote", remote).Str("plate", tx.Plate).
		Int("entry_point", entryPoint).Int("exit_point", tx.Point).Float64("fee", fee).
		Msg("vehicle exited highway")
	observability.RecordTransaction(string(KindExit), "success", time.Since(start))
	observability.RecordFee(fee)
}

func (s *Server) rejectParse(conn net.Conn, remote string, err error) string {
	var response, result string
	switch {
	case errors.Is(err, ErrInvalidTollPoint):
		response, result = "ERROR: Invalid toll point", "invalid_toll_point"
	case errors.Is(err, ErrUnknownTransactionType):
		response, result = "ERROR: Unknown transaction type", "unknown_type"
	default:
		response, result = "ERROR: Invalid message format", "invalid_format"
	}
	s.respond(conn, response)
	log.Error().Str("remote", remote).Err(err).Msg("malformed transaction")
	return result
}

// respond writes the single response line under a write deadline. Write
// failures are logged; the transaction outcome already stands.
func (s *Server) respond(conn net.Conn, line string) {
	_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		log.Error().Str("remote", conn.RemoteAddr().String()).Err(err).Msg("response write failed")
	}
}

// readRequest reads one request line, capped at MaxMessageBytes. A request
// ends at a newline, at EOF, or at the read deadline: booths that send the
// bare message and hold the connection open for the response still get
// answered from whatever bytes arrived. Only a wait that produced nothing is
// an error.
func readRequest(conn net.Conn) (string, error) {
	r := bufio.NewReaderSize(io.LimitReader(conn, MaxMessageBytes), MaxMessageBytes)
	line, err := r.ReadString('\n')
	switch {
	case err == nil, errors.Is(err, io.EOF):
	case errors.Is(err, os.ErrDeadlineExceeded) && len(line) > 0:
	default:
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// FormatFee renders a fee the way booth operators expect it on the wire, with
// one decimal place.
func FormatFee(fee float64) string {
	return strconv.FormatFloat(fee, 'f', 1, 64)
}
