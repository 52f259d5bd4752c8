/*
Package bureausdk is a Go client for the bureau API.

Public routes need no credentials:

	c := bureausdk.NewClient("https://api.applybureau.com")
	created, err := c.SubmitConsultation(ctx, bureausdk.ConsultationRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Message:  "I would like help with my job search.",
	})

Staff routes take the access token returned by Login:

	login, err := c.Login(ctx, bureausdk.LoginRequest{Email: email, Password: password})
	staff := c.WithToken(login.AccessToken)
	list, err := staff.ListConsultations(ctx, bureausdk.ListOptions{Statuses: []string{"lead"}})

Non-2xx responses are returned as *APIError; use IsCode to branch on the
error code.
*/
package bureausdk
