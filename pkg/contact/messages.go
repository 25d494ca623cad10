package contact

// User-facing copy. The site is pt-BR only.
const (
	MsgNameRequired    = "O nome é obrigatório."
	MsgEmailRequired   = "O e-mail é obrigatório."
	MsgEmailInvalid    = "Formato de e-mail inválido."
	MsgMessageRequired = "A mensagem é obrigatória."

	MsgCheckFields = "Ops! Verifique os campos em vermelho."
	MsgSending     = "Enviando..."
	MsgSent        = "Obrigado! Sua mensagem foi enviada. Logo entraremos em contato."

	LabelSubmit     = "Enviar Mensagem"
	LabelSubmitting = "Enviando..."
)
