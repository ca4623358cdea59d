// Package messages содержит чистые функции построения HTML-фрагментов для
// страниц и писем. Функции не имеют побочных эффектов: одинаковые флаги и
// поля всегда дают одинаковый фрагмент.
package messages

import "fmt"

const resetAttemptBeforeVerifiedLine = `<p class="textLarge -bottomMarginMedium">Before you can reset your password you must first verify your account.</p>`

// Глаголы для сообщений об изменении свойства компании.
const (
	ChangeVerbDeleted = "deleted"
	ChangeVerbAdded   = "added"
	ChangeVerbUpdated = "updated"
)

// MyAccountInformationEmpty — подпись незаполненного поля на странице учетной записи.
const MyAccountInformationEmpty = "Please add."

// URLNotActiveMessage — мягкое сообщение о недоступности сайта компании.
const URLNotActiveMessage = "We tried to reach your company website but it didn't appear to be active.  Please double-check to make sure your website is spelled correctly and that it is online.  If you feel this message is in error, please re-enter your website and we'll check it again."

// ConfirmationLimitReachedBody строит сообщение о том, что лимит писем
// подтверждения исчерпан. expirationTime — человекочитаемый срок, через
// который можно зарегистрироваться заново.
func ConfirmationLimitReachedBody(email, emailSubject, expirationTime string, isResetAttemptBeforeVerified bool) string {
	bodyText := fmt.Sprintf(`To activate your account please check your inbox for emails titled: <span class="highlightEffect">%s</span>.</p>
    <p class="textLarge -bottomMarginMedium">If you don't see these emails in your main inbox please check your Promotions or Junk folders.</p>
    <p class="textLarge -bottomMarginLarge">If you cannot find a confirmation email please register again in %s.</p>`, emailSubject, expirationTime)

	topSentence := ""
	if isResetAttemptBeforeVerified {
		topSentence = resetAttemptBeforeVerifiedLine
	}

	return fmt.Sprintf(`<h3 class="narrowScreen__headline -bottomMarginMedium">Confirmation Limit Reached</h3>
    %s
    <p class="textLarge -bottomMarginMedium">We are sorry but the maximum number of confirmation emails that can be sent to <span class="highlightEffect">%s</span>
    has been reached. %s`, topSentence, email, bodyText)
}

// ConfirmationSentBody строит сообщение об отправке письма подтверждения.
// Заголовок выбирается по флагам: новая регистрация и повторная регистрация
// неподтвержденной почты дают "Thanks For Registering", повторная отправка и
// попытка сброса пароля до подтверждения перекрывают его на
// "Confirmation Email Resent" — побеждает последний совпавший флаг.
func ConfirmationSentBody(email, emailSubject string, isNewRegister, isUnverifiedMultipleRegisters, isConfirmationResent, isResetAttemptBeforeVerified bool) string {
	var headline string
	if isNewRegister || isUnverifiedMultipleRegisters {
		headline = "Thanks For Registering"
	}
	if isConfirmationResent || isResetAttemptBeforeVerified {
		headline = "Confirmation Email Resent"
	}

	resentText := "An additional confirmation email has been resent to "
	if isNewRegister {
		resentText = "A confirmation email has been sent to "
	}

	topSentence := ""
	if isResetAttemptBeforeVerified {
		topSentence = resetAttemptBeforeVerifiedLine
	}

	return fmt.Sprintf(`<h3 class="headlineLarge -centerAlign -bottomMarginMedium">%s</h3>
        %s
        <p class="textLarge -bottomMarginMedium">%s <span class="highlightEffect">%s</span>
        and should arrive within a few minutes. Please watch for an email titled: <span class="highlightEffect">%s.</span></p>
        <p class="textMedium -centerAlign -bottomMarginLarge"><a href="confirmation-sent?email=%s&resend=true">Resend confirmation email</a>.</p>`,
		headline, topSentence, resentText, email, emailSubject, email)
}

// NoChange строит сообщение о том, что свойство компании не изменилось.
func NoChange(companyProperty string) string {
	return fmt.Sprintf("Your %s not changed.", sentenceFragment(companyProperty))
}

// SuccessfulChange строит сообщение об успешном изменении свойства компании.
// changeVerb — один из глаголов ChangeVerbDeleted, ChangeVerbAdded,
// ChangeVerbUpdated.
func SuccessfulChange(companyProperty, changeVerb string) string {
	return fmt.Sprintf("Your %s successfully %s.", sentenceFragment(companyProperty), changeVerb)
}

func sentenceFragment(companyProperty string) string {
	switch companyProperty {
	case "address", "description", "name", "phone number", "website":
		return fmt.Sprintf("company's %s was", companyProperty)
	case "services":
		return fmt.Sprintf("company's %s were", companyProperty)
	case "email", "password":
		return fmt.Sprintf(" %s was", companyProperty)
	}
	return ""
}

// UpgradeSalesPitch строит предложение платного размещения с ценой за 12 месяцев.
func UpgradeSalesPitch(costInDollars string) string {
	return fmt.Sprintf("Help support the site. Include a link to your website or social media page plus a company description for %s for 12 months. There are no contracts or recurring billing.", costInDollars)
}
