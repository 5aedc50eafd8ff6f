package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	scoreservice "github.com/Black-And-White-Club/winter-olympics/app/modules/score/application"
	tournamentservice "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/application"
	tournamenttypes "github.com/Black-And-White-Club/winter-olympics/app/modules/tournament/domain/types"
	"github.com/Black-And-White-Club/winter-olympics/app/shared/tabular"
)

type svc = *tournamentservice.TournamentService

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() < n {
		return cli.Exit(fmt.Sprintf("%s: expected %d argument(s), usage: %s", c.Command.FullName(), n, c.Command.ArgsUsage), 2)
	}
	return nil
}

func parseSlot(raw string) (tournamenttypes.EventSlot, error) {
	n, err := strconv.Atoi(raw)
	slot := tournamenttypes.EventSlot(n)
	if err != nil || !slot.Valid() {
		return 0, cli.Exit(fmt.Sprintf("unknown event %q, use 1 to 5", raw), 2)
	}
	return slot, nil
}

func importRosterCommand() *cli.Command {
	return &cli.Command{
		Name:      "import-roster",
		Usage:     "replace the teams with a roster file and clear every event",
		ArgsUsage: "FILE",
		Action: withService(func(c *cli.Context, s svc) error {
			if err := requireArgs(c, 1); err != nil {
				return err
			}
			path := c.Args().First()
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			result, err := s.ImportRoster(c.Context, filepath.Base(path), data)
			if err != nil {
				return err
			}
			for _, w := range result.Warnings {
				fmt.Fprintln(c.App.ErrWriter, "warning:", w)
			}
			fmt.Fprintf(c.App.Writer, "Imported %d teams\n", len(result.Teams))
			return nil
		}),
	}
}

func loadResultsCommand() *cli.Command {
	return &cli.Command{
		Name:      "load-results",
		Usage:     "replace the tournament with a saved results file",
		ArgsUsage: "FILE",
		Action: withService(func(c *cli.Context, s svc) error {
			if err := requireArgs(c, 1); err != nil {
				return err
			}
			path := c.Args().First()
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if err := s.ImportResults(c.Context, filepath.Base(path), data); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Loaded %d teams\n", len(s.State().Teams))
			return nil
		}),
	}
}

func saveResultsCommand() *cli.Command {
	return &cli.Command{
		Name:  "save-results",
		Usage: "export the tournament as a results file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: string(tabular.FormatCSV), Usage: "csv or xlsx"},
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Value: ".", Usage: "output directory"},
		},
		Action: withService(func(c *cli.Context, s svc) error {
			name, data, err := s.ExportResults(c.Context, tabular.Format(c.String("format")))
			if err != nil {
				return err
			}
			path := filepath.Join(c.String("dir"), name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, path)
			return nil
		}),
	}
}

func standingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "standings",
		Usage: "print the points table",
		Action: withService(func(c *cli.Context, s svc) error {
			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprint(w, "#\tTeam")
			for _, slot := range tournamenttypes.AllEventSlots {
				fmt.Fprintf(w, "\tE%d", int(slot))
			}
			fmt.Fprintln(w, "\tTotal")
			for _, st := range s.Standings() {
				fmt.Fprintf(w, "%d\t%s", st.Rank, st.Team.Name)
				for _, slot := range tournamenttypes.AllEventSlots {
					fmt.Fprintf(w, "\t%d", st.Points.Event(slot))
				}
				fmt.Fprintf(w, "\t%d\n", st.Points.Total)
			}
			return w.Flush()
		}),
	}
}

func chartCommand() *cli.Command {
	return &cli.Command{
		Name:  "chart",
		Usage: "render the standings as a PNG bar chart",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "standings.png"},
		},
		Action: withService(func(c *cli.Context, s svc) error {
			png, err := scoreservice.GenerateStandingsChart(s.Standings(), scoreservice.DefaultPalette)
			if err != nil {
				return err
			}
			return os.WriteFile(c.String("out"), png, 0o644)
		}),
	}
}

func matchupsCommand() *cli.Command {
	return &cli.Command{
		Name:  "matchups",
		Usage: "pair teams randomly in every bracket event, replacing existing matches",
		Action: withService(func(c *cli.Context, s svc) error {
			byes, err := s.GenerateRandomMatchups(c.Context)
			if err != nil {
				return err
			}
			for _, b := range byes {
				fmt.Fprintln(c.App.Writer, b)
			}
			return printMatches(c, s)
		}),
	}
}

func teamCommand() *cli.Command {
	return &cli.Command{
		Name:  "team",
		Usage: "manage teams",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list teams",
				Action: withService(func(c *cli.Context, s svc) error {
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					for _, t := range s.State().Teams {
						fmt.Fprintf(w, "%s\t%s\t%v\n", t.ID, t.Name, t.Members)
					}
					return w.Flush()
				}),
			},
			{
				Name:      "add",
				Usage:     "add a team",
				ArgsUsage: "NAME [MEMBER...]",
				Action: withService(func(c *cli.Context, s svc) error {
					if err := requireArgs(c, 1); err != nil {
						return err
					}
					team, err := s.AddTeam(c.Context, c.Args().First(), c.Args().Tail())
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "%s\t%s\n", team.ID, team.Name)
					return nil
				}),
			},
			{
				Name:      "remove",
				Usage:     "remove a team with its matches and time",
				ArgsUsage: "TEAM_ID",
				Action: withService(func(c *cli.Context, s svc) error {
					if err := requireArgs(c, 1); err != nil {
						return err
					}
					return s.RemoveTeam(c.Context, tournamenttypes.TeamID(c.Args().First()))
				}),
			},
			{
				Name:      "rename",
				Usage:     "rename a team",
				ArgsUsage: "TEAM_ID NAME",
				Action: withService(func(c *cli.Context, s svc) error {
					if err := requireArgs(c, 2); err != nil {
						return err
					}
					team, err := s.RenameTeam(c.Context, tournamenttypes.TeamID(c.Args().Get(0)), c.Args().Get(1))
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, team.Name)
					return nil
				}),
			},
			{
				Name:      "members",
				Usage:     "replace a team's members",
				ArgsUsage: "TEAM_ID [MEMBER...]",
				Action: withService(func(c *cli.Context, s svc) error {
					if err := requireArgs(c, 1); err != nil {
						return err
					}
					return s.SetMembers(c.Context, tournamenttypes.TeamID(c.Args().First()), c.Args().Tail())
				}),
			},
		},
	}
}

func printMatches(c *cli.Context, s svc) error {
	state := s.State()
	name := func(id tournamenttypes.TeamID) string {
		if t, ok := state.Team(id); ok {
			return t.Name
		}
		return "-"
	}
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for _, slot := range tournamenttypes.BracketEventSlots {
		for _, m := range state.Events[slot].Matches {
			winner := ""
			if m.WinnerTeamID != "" {
				winner = name(m.WinnerTeamID)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\tvs\t%s\t%s\n", slot, m.ID, name(m.ATeamID), name(m.BTeamID), winner)
		}
	}
	return w.Flush()
}

func matchCommand() *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "manage bracket matches",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list matches of every bracket event",
				Action: withService(printMatches),
			},
			{
				Name:      "add",
				Usage:     "add an empty match to an event",
				ArgsUsage: "EVENT",
				Action: withService(func(c *cli.Context, s svc) error {
					if err := requireArgs(c, 1); err != nil {
						return err
					}
					slot, err := parseSlot(c.Args().First())
					if err != nil {
						return err
					}
					m, err := s.AddMatch(c.Context, slot)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, m.ID)
					return nil
				}),
			},
			{
				Name:      "remove",
				Usage:     "remove a match",
				ArgsUsage: "MATCH_ID",
				Action: withService(func(c *cli.Context, s svc) error {
					if err := requireArgs(c, 1); err != nil {
						return err
					}
					return s.RemoveMatch(c.Context, tournamenttypes.MatchID(c.Args().First()))
				}),
			},
			{
				Name:      "side",
				Usage:     "set or clear one side of a match",
				ArgsUsage: "MATCH_ID a|b [TEAM_ID]",
				Action: withService(func(c *cli.Context, s svc) error {
					if err := requireArgs(c, 2); err != nil {
						return err
					}
					return s.SetMatchSide(c.Context,
						tournamenttypes.MatchID(c.Args().Get(0)),
						tournamenttypes.Side(c.Args().Get(1)),
						tournamenttypes.TeamID(c.Args().Get(2)),
					)
				}),
			},
			{
				Name:      "winner",
				Usage:     "set or clear the winner of a match",
				ArgsUsage: "MATCH_ID [TEAM_ID]",
				Action: withService(func(c *cli.Context, s svc) error {
					if err := requireArgs(c, 1); err != nil {
						return err
					}
					return s.SetWinner(c.Context, tournamenttypes.MatchID(c.Args().Get(0)), tournamenttypes.TeamID(c.Args().Get(1)))
				}),
			},
		},
	}
}

func timeCommand() *cli.Command {
	eventFlag := &cli.StringFlag{Name: "event", Aliases: []string{"e"}, Value: strconv.Itoa(int(tournamenttypes.TimedEventSlot))}
	return &cli.Command{
		Name:  "time",
		Usage: "record timed event results",
		Subcommands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "record a team's time in seconds; an empty value removes it",
				ArgsUsage: "TEAM_ID [SECONDS]",
				Flags:     []cli.Flag{eventFlag},
				Action: withService(func(c *cli.Context, s svc) error {
					if err := requireArgs(c, 1); err != nil {
						return err
					}
					slot, err := parseSlot(c.String("event"))
					if err != nil {
						return err
					}
					return s.SetTime(c.Context, slot, tournamenttypes.TeamID(c.Args().Get(0)), c.Args().Get(1))
				}),
			},
			{
				Name:  "clear",
				Usage: "remove every time",
				Flags: []cli.Flag{eventFlag},
				Action: withService(func(c *cli.Context, s svc) error {
					slot, err := parseSlot(c.String("event"))
					if err != nil {
						return err
					}
					return s.ClearTimes(c.Context, slot)
				}),
			},
			{
				Name:  "list",
				Usage: "print the timed ranking",
				Flags: []cli.Flag{eventFlag},
				Action: withService(func(c *cli.Context, s svc) error {
					slot, err := parseSlot(c.String("event"))
					if err != nil {
						return err
					}
					state := s.State()
					points := scoreservice.ComputePoints(state)
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					for _, e := range scoreservice.RankTimes(state, slot) {
						team, _ := state.Team(e.TeamID)
						fmt.Fprintf(w, "%s\t%s\t%d\n", team.Name, tournamenttypes.FormatSeconds(e.Seconds), points[e.TeamID].Event(slot))
					}
					return w.Flush()
				}),
			},
		},
	}
}

func settingCommand() *cli.Command {
	return &cli.Command{
		Name:  "setting",
		Usage: "manage display settings",
		Subcommands: []*cli.Command{
			{
				Name:      "set",
				ArgsUsage: "KEY VALUE",
				Action: withService(func(c *cli.Context, s svc) error {
					if err := requireArgs(c, 2); err != nil {
						return err
					}
					return s.SetSetting(c.Context, c.Args().Get(0), c.Args().Get(1))
				}),
			},
		},
	}
}

func resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "discard the tournament and start over",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Usage: "confirm the reset"},
		},
		Action: withService(func(c *cli.Context, s svc) error {
			if !c.Bool("yes") {
				return cli.Exit("reset discards every team and result; pass --yes to confirm", 2)
			}
			return s.Reset(c.Context)
		}),
	}
}
