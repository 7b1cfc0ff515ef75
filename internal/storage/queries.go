package storage

import (
	"database/sql"
	"fmt"

	"royale-metrics/internal/model"
)

// UpsertCard inserts or replaces a catalog card keyed by id.
func (db *DB) UpsertCard(c model.Card) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO cards(id, name, max_level, icon_url)
		VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.MaxLevel, c.IconURL,
	)
	return err
}

// UpsertCards bulk-upserts catalog cards in a transaction.
func (db *DB) UpsertCards(cards []model.Card) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO cards(id, name, max_level, icon_url)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cards {
		if _, err := stmt.Exec(c.ID, c.Name, c.MaxLevel, c.IconURL); err != nil {
			return fmt.Errorf("upsert card %d: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// ListCards returns the full stored catalog ordered by id.
func (db *DB) ListCards() ([]model.Card, error) {
	rows, err := db.conn.Query(`SELECT id, name, max_level, icon_url FROM cards ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Card
	for rows.Next() {
		var c model.Card
		if err := rows.Scan(&c.ID, &c.Name, &c.MaxLevel, &c.IconURL); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CardByName finds a catalog card by its exact display name. Returns
// (nil, nil) when no card has that name.
func (db *DB) CardByName(name string) (*model.Card, error) {
	var c model.Card
	err := db.conn.QueryRow(`
		SELECT id, name, max_level, icon_url FROM cards WHERE name = ?`, name).
		Scan(&c.ID, &c.Name, &c.MaxLevel, &c.IconURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CatalogNames returns the id → display name lookup for read-only
// joins in the statistics layer.
func (db *DB) CatalogNames() (map[int]string, error) {
	rows, err := db.conn.Query(`SELECT id, name FROM cards`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[int]string)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// UpsertPlayer replaces a player profile wholesale, keyed by tag.
func (db *DB) UpsertPlayer(p model.Player) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO players(tag, name, exp_level, trophies, clan_tag, synced_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Tag, p.Name, p.ExpLevel, p.Trophies, p.ClanTag, p.SyncedAt,
	)
	return err
}

// UpsertBattle replaces the canonical battle whose (battle_time,
// player_tag) matches, or inserts it. The whole write is one
// transaction: the battle row goes in via INSERT OR REPLACE and the
// participant/deck child rows are deleted and reinserted, so a
// re-ingest can never leave stale deck rows behind.
func (db *DB) UpsertBattle(b model.Battle) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	winner := sql.NullString{String: b.Winner, Valid: b.Winner != ""}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO battles(
			battle_time, player_tag, date, timestamp_s,
			trophy_diff, towers_destroyed, winner,
			arena, game_mode, duration_s
		) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		b.BattleTime, b.PlayerTag, b.Date, b.TimestampS,
		b.TrophyDifference, b.TowersDestroyed, winner,
		b.Arena, b.GameMode, b.DurationS,
	)
	if err != nil {
		return fmt.Errorf("upsert battle %s/%s: %w", b.BattleTime, b.PlayerTag, err)
	}

	for _, table := range []string{"battle_players", "battle_cards"} {
		if _, err := tx.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE battle_time = ? AND player_tag = ?", table),
			b.BattleTime, b.PlayerTag,
		); err != nil {
			return err
		}
	}

	pstmt, err := tx.Prepare(`
		INSERT INTO battle_players(battle_time, player_tag, side, idx, tag, name, starting_trophies, crowns)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer pstmt.Close()

	cstmt, err := tx.Prepare(`
		INSERT INTO battle_cards(battle_time, player_tag, side, idx, slot, card_id, card_name)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer cstmt.Close()

	insertSide := func(side string, parts []model.Participant) error {
		for i, p := range parts {
			if _, err := pstmt.Exec(b.BattleTime, b.PlayerTag, side, i,
				p.Tag, p.Name, p.StartingTrophies, p.Crowns); err != nil {
				return fmt.Errorf("insert %s participant: %w", side, err)
			}
			for slot, card := range p.Deck {
				if _, err := cstmt.Exec(b.BattleTime, b.PlayerTag, side, i, slot,
					card.ID, card.Name); err != nil {
					return fmt.Errorf("insert %s deck card: %w", side, err)
				}
			}
		}
		return nil
	}
	if err := insertSide("team", b.Team); err != nil {
		return err
	}
	if err := insertSide("opponent", b.Opponent); err != nil {
		return err
	}

	return tx.Commit()
}

// ListBattles returns full canonical battles whose date falls in the
// inclusive [from, to] range (YYYY/MM/DD strings; empty bound =
// unbounded), ordered by (battle_time, player_tag).
func (db *DB) ListBattles(from, to string) ([]model.Battle, error) {
	where := "1=1"
	args := []any{}
	if from != "" {
		where += " AND date >= ?"
		args = append(args, from)
	}
	if to != "" {
		where += " AND date <= ?"
		args = append(args, to)
	}

	rows, err := db.conn.Query(`
		SELECT battle_time, player_tag, date, timestamp_s,
		       trophy_diff, towers_destroyed, winner,
		       arena, game_mode, duration_s
		FROM battles WHERE `+where+`
		ORDER BY battle_time, player_tag`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type key struct{ bt, pt string }
	var battles []model.Battle
	index := make(map[key]int)
	for rows.Next() {
		var b model.Battle
		var winner sql.NullString
		if err := rows.Scan(&b.BattleTime, &b.PlayerTag, &b.Date, &b.TimestampS,
			&b.TrophyDifference, &b.TowersDestroyed, &winner,
			&b.Arena, &b.GameMode, &b.DurationS); err != nil {
			return nil, err
		}
		b.Winner = winner.String
		index[key{b.BattleTime, b.PlayerTag}] = len(battles)
		battles = append(battles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(battles) == 0 {
		return nil, nil
	}

	// Participants, in source order.
	prows, err := db.conn.Query(`
		SELECT p.battle_time, p.player_tag, p.side, p.idx,
		       p.tag, p.name, p.starting_trophies, p.crowns
		FROM battle_players p
		JOIN battles b ON b.battle_time = p.battle_time AND b.player_tag = p.player_tag
		WHERE `+where+`
		ORDER BY p.battle_time, p.player_tag, p.side, p.idx`, args...)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	type pkey struct {
		bt, pt, side string
		idx          int
	}
	pindex := make(map[pkey]*model.Participant)
	for prows.Next() {
		var bt, pt, side string
		var idx int
		var p model.Participant
		if err := prows.Scan(&bt, &pt, &side, &idx,
			&p.Tag, &p.Name, &p.StartingTrophies, &p.Crowns); err != nil {
			return nil, err
		}
		bi, ok := index[key{bt, pt}]
		if !ok {
			continue
		}
		if side == "team" {
			battles[bi].Team = append(battles[bi].Team, p)
			pindex[pkey{bt, pt, side, idx}] = &battles[bi].Team[len(battles[bi].Team)-1]
		} else {
			battles[bi].Opponent = append(battles[bi].Opponent, p)
			pindex[pkey{bt, pt, side, idx}] = &battles[bi].Opponent[len(battles[bi].Opponent)-1]
		}
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}

	crows, err := db.conn.Query(`
		SELECT c.battle_time, c.player_tag, c.side, c.idx, c.card_id, c.card_name
		FROM battle_cards c
		JOIN battles b ON b.battle_time = c.battle_time AND b.player_tag = c.player_tag
		WHERE `+where+`
		ORDER BY c.battle_time, c.player_tag, c.side, c.idx, c.slot`, args...)
	if err != nil {
		return nil, err
	}
	defer crows.Close()

	for crows.Next() {
		var bt, pt, side string
		var idx int
		var card model.DeckCard
		if err := crows.Scan(&bt, &pt, &side, &idx, &card.ID, &card.Name); err != nil {
			return nil, err
		}
		if p, ok := pindex[pkey{bt, pt, side, idx}]; ok {
			p.Deck = append(p.Deck, card)
		}
	}
	return battles, crows.Err()
}

// ListBattleSummaries returns lightweight rows for the list command,
// newest first.
func (db *DB) ListBattleSummaries() ([]model.BattleSummary, error) {
	rows, err := db.conn.Query(`
		SELECT battle_time, player_tag, date, arena, game_mode, winner, towers_destroyed
		FROM battles ORDER BY timestamp_s DESC, player_tag`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BattleSummary
	for rows.Next() {
		var s model.BattleSummary
		var winner sql.NullString
		if err := rows.Scan(&s.BattleTime, &s.PlayerTag, &s.Date,
			&s.Arena, &s.GameMode, &winner, &s.TowersDestroyed); err != nil {
			return nil, err
		}
		s.Winner = winner.String
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountBattles returns the number of stored canonical battles.
func (db *DB) CountBattles() (int, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(1) FROM battles`).Scan(&n)
	return n, err
}

// DropBattles deletes every stored battle and its child rows. The card
// catalog and player profiles are left alone.
func (db *DB) DropBattles() error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"battle_cards", "battle_players", "battles"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return tx.Commit()
}
