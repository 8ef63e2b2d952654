package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/srs"
)

// reviewAPI is the part of the client a session needs.
type reviewAPI interface {
	Due(ctx context.Context) ([]models.Flashcard, error)
	srs.Rater
}

func runDue(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	due, err := c.Due(cmd.Context())
	if err != nil {
		return err
	}
	printDue(cmd.OutOrStdout(), due)
	return nil
}

func printDue(out io.Writer, due []models.Flashcard) {
	if len(due) == 0 {
		fmt.Fprintln(out, styles.Success.Render("Nada para revisar agora."))
		return
	}
	fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("%d flashcards para revisar", len(due))))
	for _, card := range due {
		course := "sem disciplina"
		if card.Course != nil {
			course = card.Course.Name
		}
		status := "nova"
		if card.Review != nil {
			status = "desde " + card.Review.DueAt.Local().Format("02/01 15:04")
		}
		fmt.Fprintf(out, "  %s  %s %s\n", card.Front, styles.Muted.Render("["+course+"]"), styles.Muted.Render(status))
	}
}

func runReview(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	_, err = reviewSession(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

// reviewSession walks the due cards: Enter reveals the answer, a digit from
// 0 to 5 rates it, q abandons. It returns how many ratings were saved.
func reviewSession(ctx context.Context, api reviewAPI, in io.Reader, out io.Writer) (int, error) {
	due, err := api.Due(ctx)
	if err != nil {
		return 0, err
	}

	session := srs.NewSession[models.Flashcard](api)
	if err := session.Start(due); err != nil {
		if errors.Is(err, srs.ErrNoDueCards) {
			fmt.Fprintln(out, styles.Success.Render("Nada para revisar agora."))
			return 0, nil
		}
		return 0, err
	}

	lines := bufio.NewScanner(in)
	reviewed := 0
	for {
		card, ok := session.Current()
		if !ok {
			return reviewed, nil
		}
		current, total := session.Progress()
		fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("Card %d de %d", current, total)))
		fmt.Fprintln(out, styles.Card.Render(card.Front))
		fmt.Fprint(out, styles.Muted.Render("Enter revela a resposta, q encerra: "))

		line, ok := readLine(lines)
		if !ok || line == "q" {
			session.Abandon()
			fmt.Fprintln(out, styles.Muted.Render(fmt.Sprintf("\nSessão encerrada, %d revisados.", reviewed)))
			return reviewed, nil
		}
		if err := session.Reveal(); err != nil {
			return reviewed, err
		}
		fmt.Fprintln(out, styles.Answer.Render(card.Back))

		for {
			fmt.Fprint(out, styles.Muted.Render("Qualidade 0-5 (q encerra): "))
			line, ok := readLine(lines)
			if !ok || line == "q" {
				session.Abandon()
				fmt.Fprintln(out, styles.Muted.Render(fmt.Sprintf("\nSessão encerrada, %d revisados.", reviewed)))
				return reviewed, nil
			}
			n, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintln(out, styles.Error.Render("Digite um número de 0 a 5."))
				continue
			}

			sched, completed, err := session.Rate(ctx, srs.Quality(n))
			switch {
			case errors.Is(err, srs.ErrInvalidQuality):
				fmt.Fprintln(out, styles.Error.Render("Digite um número de 0 a 5."))
				continue
			case err != nil:
				fmt.Fprintln(out, styles.Error.Render("Não foi possível salvar: "+err.Error()))
				continue
			}

			reviewed++
			fmt.Fprintln(out, styles.Success.Render("Próxima revisão: "+describeDue(sched.DueAt, time.Now())))
			if completed {
				fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("Sessão concluída, %d revisados.", reviewed)))
				return reviewed, nil
			}
			break
		}
	}
}

func readLine(lines *bufio.Scanner) (string, bool) {
	if !lines.Scan() {
		return "", false
	}
	return strings.TrimSpace(lines.Text()), true
}

func describeDue(due, now time.Time) string {
	wait := due.Sub(now)
	switch {
	case wait <= 0:
		return "agora"
	case wait < time.Hour:
		return fmt.Sprintf("em %d min", int(wait.Round(time.Minute)/time.Minute))
	case wait < 24*time.Hour:
		return fmt.Sprintf("em %d h", int(wait.Round(time.Hour)/time.Hour))
	default:
		return fmt.Sprintf("em %d dias (%s)", int(wait.Round(24*time.Hour)/(24*time.Hour)), due.Local().Format("02/01/2006"))
	}
}
