package httpapi

import (
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/decision"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/points"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/stats"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

// tableDTO carries one scraped table. An empty string cell is blank, which is
// not the same as "0".
type tableDTO struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// decisionsDTO pre-answers every question an ingest may raise. Table indexes
// are positions in the submitted or fetched table list.
type decisionsDTO struct {
	TeamListedFirst *bool             `json:"team_listed_first"`
	BattingTable    *int              `json:"batting_table" validate:"omitempty,min=0"`
	BowlingTable    *int              `json:"bowling_table" validate:"omitempty,min=0"`
	TeamWon         *bool             `json:"team_won"`
	ManOfTheMatch   string            `json:"man_of_the_match" validate:"max=120"`
	NameCorrections map[string]string `json:"name_corrections" validate:"omitempty,dive,keys,required,endkeys,required"`
}

// manualFieldingDTO supplies fielding for a page without an opponent batting
// table.
type manualFieldingDTO struct {
	Player    string `json:"player" validate:"required,max=120"`
	Catches   int    `json:"catches" validate:"min=0"`
	RunOuts   int    `json:"run_outs" validate:"min=0"`
	Stumpings int    `json:"stumpings" validate:"min=0"`
}

type ingestMatchRequest struct {
	MatchKey  string              `json:"match_key" validate:"omitempty,max=200"`
	Week      int                 `json:"week" validate:"required,min=1"`
	SourceURL string              `json:"source_url" validate:"required_without=Tables,omitempty,url"`
	Tables    []tableDTO          `json:"tables" validate:"required_without=SourceURL"`
	Fielding  []manualFieldingDTO `json:"fielding" validate:"omitempty,max=30,dive"`
	DryRun    bool                `json:"dry_run"`
	Decisions decisionsDTO        `json:"decisions"`
}

type ingestWeekMatchDTO struct {
	MatchKey  string              `json:"match_key" validate:"omitempty,max=200"`
	SourceURL string              `json:"source_url" validate:"required_without=Tables,omitempty,url"`
	Tables    []tableDTO          `json:"tables" validate:"required_without=SourceURL"`
	Fielding  []manualFieldingDTO `json:"fielding" validate:"omitempty,max=30,dive"`
	Decisions *decisionsDTO       `json:"decisions"`
}

type ingestWeekRequest struct {
	DryRun    bool                 `json:"dry_run"`
	Decisions decisionsDTO         `json:"decisions"`
	Matches   []ingestWeekMatchDTO `json:"matches" validate:"required,min=1,max=50,dive"`
}

func (d decisionsDTO) script() decision.Script {
	return decision.Script{
		TeamListedFirst: d.TeamListedFirst,
		BattingTable:    d.BattingTable,
		BowlingTable:    d.BowlingTable,
		TeamWon:         d.TeamWon,
		ManOfTheMatch:   d.ManOfTheMatch,
		NameCorrections: d.NameCorrections,
	}
}

func tablesFromDTO(in []tableDTO) scorecard.RawTableSet {
	if len(in) == 0 {
		return nil
	}
	out := make(scorecard.RawTableSet, 0, len(in))
	for _, t := range in {
		out = append(out, scorecard.TableFromStrings(t.Header, t.Rows))
	}
	return out
}

func fieldingFromDTO(in []manualFieldingDTO) []scorecard.FieldingEntry {
	if len(in) == 0 {
		return nil
	}
	out := make([]scorecard.FieldingEntry, 0, len(in))
	for _, f := range in {
		out = append(out, scorecard.FieldingEntry{
			FielderName: strings.TrimSpace(f.Player),
			Catches:     f.Catches,
			RunOuts:     f.RunOuts,
			Stumpings:   f.Stumpings,
		})
	}
	return out
}

type playerDTO struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func playerToDTO(p roster.Player) playerDTO {
	return playerDTO{Number: p.Number, Name: p.Name, Role: string(p.Role)}
}

type statDTO struct {
	Player          string  `json:"player"`
	Games           int     `json:"games"`
	Runs            int     `json:"runs"`
	Fours           int     `json:"fours"`
	Sixes           int     `json:"sixes"`
	Fifties         int     `json:"fifties"`
	Centuries       int     `json:"centuries"`
	OneFifties      int     `json:"one_fifties"`
	DoubleCenturies int     `json:"double_centuries"`
	Ducks           int     `json:"ducks"`
	Overs           string  `json:"overs"`
	Wickets         int     `json:"wickets"`
	RunsAgainst     int     `json:"runs_against"`
	Maidens         int     `json:"maidens"`
	ThreeFourFers   int     `json:"three_four_fers"`
	FiveFers        int     `json:"five_fers"`
	SixPlusFers     int     `json:"six_plus_fers"`
	Catches         int     `json:"catches"`
	RunOuts         int     `json:"run_outs"`
	Stumpings       int     `json:"stumpings"`
	ManOfTheMatch   int     `json:"man_of_the_match"`
	Wins            int     `json:"wins"`
	BattingPoints   float64 `json:"batting_points"`
	BowlingPoints   float64 `json:"bowling_points"`
	FieldingPoints  float64 `json:"fielding_points"`
	BonusPoints     float64 `json:"bonus_points"`
	TotalPoints     float64 `json:"total_points"`
}

func statToDTO(s stats.CumulativeStat) statDTO {
	return statDTO{
		Player:          s.PlayerName,
		Games:           s.Games,
		Runs:            s.Runs,
		Fours:           s.Fours,
		Sixes:           s.Sixes,
		Fifties:         s.Fifties,
		Centuries:       s.Centuries,
		OneFifties:      s.OneFifties,
		DoubleCenturies: s.DoubleCenturies,
		Ducks:           s.Ducks,
		Overs:           s.Overs().String(),
		Wickets:         s.Wickets,
		RunsAgainst:     s.RunsAgainst,
		Maidens:         s.Maidens,
		ThreeFourFers:   s.ThreeFourFers,
		FiveFers:        s.FiveFers,
		SixPlusFers:     s.SixPlusFers,
		Catches:         s.Catches,
		RunOuts:         s.RunOuts,
		Stumpings:       s.Stumpings,
		ManOfTheMatch:   s.ManOfTheMatch,
		Wins:            s.Wins,
		BattingPoints:   s.BattingPoints,
		BowlingPoints:   s.BowlingPoints,
		FieldingPoints:  s.FieldingPoints,
		BonusPoints:     s.BonusPoints,
		TotalPoints:     s.Total(),
	}
}

func statsToDTO(in []stats.CumulativeStat) []statDTO {
	out := make([]statDTO, 0, len(in))
	for _, s := range in {
		out = append(out, statToDTO(s))
	}
	return out
}

type sheetDTO struct {
	Sheet   string    `json:"sheet"`
	Players []statDTO `json:"players"`
}

type layoutDTO struct {
	BattingTable    int  `json:"batting_table"`
	BowlingTable    int  `json:"bowling_table"`
	OpponentTable   int  `json:"opponent_table"`
	TeamListedFirst bool `json:"team_listed_first"`
	Manual          bool `json:"manual"`
}

type battingDTO struct {
	Row       int    `json:"row"`
	Player    string `json:"player"`
	Runs      int    `json:"runs"`
	Balls     int    `json:"balls"`
	Fours     int    `json:"fours"`
	Sixes     int    `json:"sixes"`
	Dismissal string `json:"dismissal"`
	Dismissed bool   `json:"dismissed"`
}

type bowlingDTO struct {
	Row          int    `json:"row"`
	Player       string `json:"player"`
	Overs        string `json:"overs"`
	Maidens      int    `json:"maidens"`
	RunsConceded int    `json:"runs_conceded"`
	Wickets      int    `json:"wickets"`
	Wides        int    `json:"wides"`
	NoBalls      int    `json:"no_balls"`
}

type fieldingDTO struct {
	Player    string `json:"player"`
	Catches   int    `json:"catches"`
	RunOuts   int    `json:"run_outs"`
	Stumpings int    `json:"stumpings"`
}

type rowIssueDTO struct {
	Table  string `json:"table,omitempty"`
	Row    int    `json:"row"`
	Column string `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
	Error  string `json:"error"`
}

type pointsDTO struct {
	Player        string  `json:"player"`
	Batting       float64 `json:"batting"`
	Bowling       float64 `json:"bowling"`
	Fielding      float64 `json:"fielding"`
	Bonus         float64 `json:"bonus"`
	Total         float64 `json:"total"`
	Won           bool    `json:"won"`
	ManOfTheMatch bool    `json:"man_of_the_match"`
}

type matchReportDTO struct {
	MatchKey       string               `json:"match_key"`
	Week           int                  `json:"week"`
	DryRun         bool                 `json:"dry_run"`
	Partial        bool                 `json:"partial"`
	ManualFielding bool                 `json:"manual_fielding"`
	Layout         layoutDTO            `json:"layout"`
	TeamWon        bool                 `json:"team_won"`
	ManOfTheMatch  string               `json:"man_of_the_match,omitempty"`
	Batting        []battingDTO         `json:"batting"`
	Bowling        []bowlingDTO         `json:"bowling"`
	Fielding       []fieldingDTO        `json:"fielding"`
	Rejected       []rowIssueDTO        `json:"rejected"`
	Unclassified   []rowIssueDTO        `json:"unclassified"`
	Corrections    map[string]string    `json:"corrections,omitempty"`
	Points         []pointsDTO          `json:"points"`
	Updated        map[string][]statDTO `json:"updated,omitempty"`
}

func matchReportToDTO(r usecase.MatchReport) matchReportDTO {
	out := matchReportDTO{
		MatchKey:       r.MatchKey,
		Week:           r.Week,
		DryRun:         r.DryRun,
		Partial:        r.Partial,
		ManualFielding: r.ManualFielding,
		Layout: layoutDTO{
			BattingTable:    r.Layout.BattingIndex,
			BowlingTable:    r.Layout.BowlingIndex,
			OpponentTable:   r.Layout.OpponentIndex,
			TeamListedFirst: r.Layout.TeamListedFirst,
			Manual:          r.Layout.Manual,
		},
		TeamWon:       r.Outcome.TeamWon,
		ManOfTheMatch: r.Outcome.ManOfTheMatch,
		Batting:       make([]battingDTO, 0, len(r.Batting)),
		Bowling:       make([]bowlingDTO, 0, len(r.Bowling)),
		Fielding:      make([]fieldingDTO, 0, len(r.Fielding)),
		Rejected:      make([]rowIssueDTO, 0, len(r.Rejected)),
		Unclassified:  make([]rowIssueDTO, 0, len(r.Unclassified)),
		Corrections:   r.Corrections,
		Points:        make([]pointsDTO, 0, len(r.Lines)),
	}

	for _, e := range r.Batting {
		out.Batting = append(out.Batting, battingDTO{
			Row:       e.Row,
			Player:    e.PlayerName,
			Runs:      e.Runs,
			Balls:     e.Balls,
			Fours:     e.Fours,
			Sixes:     e.Sixes,
			Dismissal: string(e.Dismissal),
			Dismissed: e.Dismissed,
		})
	}
	for _, e := range r.Bowling {
		out.Bowling = append(out.Bowling, bowlingDTO{
			Row:          e.Row,
			Player:       e.PlayerName,
			Overs:        e.Overs.String(),
			Maidens:      e.Maidens,
			RunsConceded: e.RunsConceded,
			Wickets:      e.Wickets,
			Wides:        e.Wides,
			NoBalls:      e.NoBalls,
		})
	}
	for _, e := range r.Fielding {
		out.Fielding = append(out.Fielding, fieldingDTO{
			Player:    e.FielderName,
			Catches:   e.Catches,
			RunOuts:   e.RunOuts,
			Stumpings: e.Stumpings,
		})
	}
	for _, e := range r.Rejected {
		out.Rejected = append(out.Rejected, rowIssueDTO{
			Table:  e.Table,
			Row:    e.Row,
			Column: e.Column,
			Value:  e.Value,
			Error:  e.Error(),
		})
	}
	for _, d := range r.Unclassified {
		out.Unclassified = append(out.Unclassified, rowIssueDTO{
			Row:   d.Row,
			Value: d.Text,
			Error: "dismissal not classified",
		})
	}
	for _, l := range r.Lines {
		out.Points = append(out.Points, pointsDTO{
			Player:        l.PlayerName,
			Batting:       l.CategoryPoints(points.CategoryBatting),
			Bowling:       l.CategoryPoints(points.CategoryBowling),
			Fielding:      l.CategoryPoints(points.CategoryFielding),
			Bonus:         l.BonusPoints,
			Total:         l.Total(),
			Won:           l.Won,
			ManOfTheMatch: l.ManOfTheMatch,
		})
	}
	if len(r.Updated) > 0 {
		out.Updated = make(map[string][]statDTO, len(r.Updated))
		for sheet, items := range r.Updated {
			out.Updated[sheet.String()] = statsToDTO(items)
		}
	}
	return out
}

type matchFailureDTO struct {
	MatchKey string `json:"match_key"`
	Reason   string `json:"reason"`
	Error    string `json:"error"`
}

type weekReportDTO struct {
	Week     int               `json:"week"`
	Matches  []matchReportDTO  `json:"matches"`
	Failures []matchFailureDTO `json:"failures"`
}

func weekReportToDTO(r usecase.WeekReport) weekReportDTO {
	out := weekReportDTO{
		Week:     r.Week,
		Matches:  make([]matchReportDTO, 0, len(r.Reports)),
		Failures: make([]matchFailureDTO, 0, len(r.Failures)),
	}
	for _, m := range r.Reports {
		out.Matches = append(out.Matches, matchReportToDTO(m))
	}
	for _, f := range r.Failures {
		out.Failures = append(out.Failures, matchFailureDTO{
			MatchKey: f.MatchKey,
			Reason:   mapError(f.Err).Reason,
			Error:    f.Err.Error(),
		})
	}
	return out
}
