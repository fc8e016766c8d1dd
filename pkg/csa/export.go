package csa

import (
	"fmt"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

// MoveRow is one ply of a GameSummary. ElapsedSec is -1 when no time was
// recorded.
type MoveRow struct {
	Ply        int32  `parquet:"name=ply, type=INT32"`
	Move       string `parquet:"name=move, type=BYTE_ARRAY, convertedtype=UTF8"`
	ElapsedSec int64  `parquet:"name=elapsed_sec, type=INT64"`
}

// GameSummary is the flattened, columnar form of a GameRecord.
type GameSummary struct {
	GameID      string    `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Black       string    `parquet:"name=black, type=BYTE_ARRAY, convertedtype=UTF8"`
	White       string    `parquet:"name=white, type=BYTE_ARRAY, convertedtype=UTF8"`
	Event       string    `parquet:"name=event, type=BYTE_ARRAY, convertedtype=UTF8"`
	Site        string    `parquet:"name=site, type=BYTE_ARRAY, convertedtype=UTF8"`
	Opening     string    `parquet:"name=opening, type=BYTE_ARRAY, convertedtype=UTF8"`
	StartTime   string    `parquet:"name=start_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	EndTime     string    `parquet:"name=end_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	MainTimeSec int64     `parquet:"name=main_time_sec, type=INT64"`
	ByoyomiSec  int64     `parquet:"name=byoyomi_sec, type=INT64"`
	InitialSFEN string    `parquet:"name=initial_sfen, type=BYTE_ARRAY, convertedtype=UTF8"`
	Ending      string    `parquet:"name=ending, type=BYTE_ARRAY, convertedtype=UTF8"`
	MoveCount   int32     `parquet:"name=move_count, type=INT32"`
	Moves       []MoveRow `parquet:"name=moves, type=LIST"`
}

// Summarize flattens r. Missing optional fields become empty strings, an
// unknown time limit becomes -1 seconds, and InitialSFEN is empty when the
// starting position cannot be resolved.
func Summarize(id string, r *GameRecord) GameSummary {
	s := GameSummary{
		GameID:      id,
		MainTimeSec: -1,
		ByoyomiSec:  -1,
		MoveCount:   int32(len(r.Moves)),
		Moves:       make([]MoveRow, 0, len(r.Moves)),
	}
	if r.BlackPlayer != nil {
		s.Black = *r.BlackPlayer
	}
	if r.WhitePlayer != nil {
		s.White = *r.WhitePlayer
	}
	if r.Event != nil {
		s.Event = *r.Event
	}
	if r.Site != nil {
		s.Site = *r.Site
	}
	if r.Opening != nil {
		s.Opening = *r.Opening
	}
	if r.StartTime != nil {
		s.StartTime = r.StartTime.String()
	}
	if r.EndTime != nil {
		s.EndTime = r.EndTime.String()
	}
	if r.TimeLimit != nil {
		s.MainTimeSec = int64(r.TimeLimit.MainTime / time.Second)
		s.ByoyomiSec = int64(r.TimeLimit.Byoyomi / time.Second)
	}
	if sfen, err := r.SFENAt(0); err == nil {
		s.InitialSFEN = sfen
	}
	if kind, ok := r.Ending(); ok {
		s.Ending = kind.Keyword()
	}
	for i, m := range r.Moves {
		row := MoveRow{Ply: int32(i + 1), Move: m.Action.String(), ElapsedSec: -1}
		if m.Time != nil {
			row.ElapsedSec = int64(*m.Time / time.Second)
		}
		s.Moves = append(s.Moves, row)
	}
	return s
}

// WriteParquet drains records into a snappy-compressed parquet file. The
// column layout is described in schema/summary_schema.json.
func WriteParquet(path string, records <-chan GameSummary, parallel int64) (err error) {
	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fileWriter.Close(); err == nil {
			err = cerr
		}
	}()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(GameSummary), parallel)
	if err != nil {
		return err
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	for s := range records {
		if err := parquetWriter.Write(s); err != nil {
			parquetWriter.WriteStop()
			return fmt.Errorf("write %s: %w", s.GameID, err)
		}
	}
	return parquetWriter.WriteStop()
}

// ReadParquet loads every summary stored at path.
func ReadParquet(path string, parallel int64) ([]GameSummary, error) {
	fileReader, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fileReader.Close()

	parquetReader, err := reader.NewParquetReader(fileReader, new(GameSummary), parallel)
	if err != nil {
		return nil, err
	}
	defer parquetReader.ReadStop()

	num := int(parquetReader.GetNumRows())
	records := make([]GameSummary, 0, num)
	batchSize := 1024
	for offset := 0; offset < num; offset += batchSize {
		remain := num - offset
		if remain < batchSize {
			batchSize = remain
		}
		batch := make([]GameSummary, batchSize)
		if err := parquetReader.Read(&batch); err != nil {
			return nil, err
		}
		records = append(records, batch...)
	}
	return records, nil
}
