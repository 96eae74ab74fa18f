package notifications

import (
	"log"

	"github.com/StudioAgenda/salon-scheduler/internal/models"
)

// Sender entrega a notificação em si (e-mail, SMS...). A implementação
// padrão só registra no log; a entrega real é colaborador externo.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(to, subject, htmlBody string) error {
	log.Printf("notification to=%s subject=%q (%d bytes)", to, subject, len(htmlBody))
	return nil
}

// ======================================================
// DISPATCHER (fire-and-forget)
// ======================================================

type BookingEvent struct {
	Appointment  models.Appointment
	Service      models.Service
	Professional models.Professional
}

// Dispatcher desacopla a notificação da criação da reserva: falha de
// envio nunca desfaz a reserva.
type Dispatcher struct {
	sender Sender
	queue  chan BookingEvent
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan BookingEvent, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if ev.Appointment.ClientEmail == "" {
			continue
		}

		html, err := buildBookingConfirmationHTML(ev)
		if err != nil {
			log.Println("notification template error:", err)
			continue
		}

		if err := d.sender.Send(
			ev.Appointment.ClientEmail,
			"Reserva recebida",
			html,
		); err != nil {
			log.Println("notification send error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev BookingEvent) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		log.Println("notification queue full, dropping event")
	}
}
