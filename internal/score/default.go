package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/binary"

	"git.lost.host/meutraa/reso/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

type DefaultScorer struct {
	db *sql.DB
}

func (s *DefaultScorer) Init() error {
	db, err := sql.Open("sqlite3", "./results.db")
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists results
	  (
		  id integer not null primary key,
		  sum text,
		  level integer,
		  score integer,
		  rank text,
		  perfects integer,
		  goods integer,
		  bads integer,
		  misses integer,
		  maxcombo integer
	  );
	`
	if _, err := db.Exec(initStatement); nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

// hashChart identifies a chart by its generated content, so the same
// audio at the same level and seed maps to the same history row.
func hashChart(c *game.Chart) string {
	h := sha256.New()
	var buf [10]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(c.Level))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(c.Lanes))
	h.Write(buf[:4])
	for _, n := range c.Notes {
		binary.LittleEndian.PutUint16(buf[0:2], uint16(n.Lane))
		binary.LittleEndian.PutUint64(buf[2:10], uint64(n.Time))
		h.Write(buf[:])
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func (s *DefaultScorer) Save(c *game.Chart, r Result) error {
	_, err := s.db.Exec(
		"insert into results(sum, level, score, rank, perfects, goods, bads, misses, maxcombo) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		hashChart(c), c.Level, r.Score, r.Rank, r.Perfects, r.Goods, r.Bads, r.Misses, r.MaxCombo)
	return err
}

func (s *DefaultScorer) Best(c *game.Chart) (*Result, error) {
	row := s.db.QueryRow(
		"select score, rank, perfects, goods, bads, misses, maxcombo from results where sum = ? order by score desc limit 1",
		hashChart(c))
	var r Result
	err := row.Scan(&r.Score, &r.Rank, &r.Perfects, &r.Goods, &r.Bads, &r.Misses, &r.MaxCombo)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	return &r, nil
}
