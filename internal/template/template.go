// Package template seeds the default checklist for a new project.
//
// The content is the machine-learning project checklist every project starts
// from. Sub-bullets are flattened into indented "  - " items so the whole
// checklist stays a flat, checkable list per section.
package template

import "github.com/idilsaglam/mlcheck/internal/model"

var frameTheProblem = []string{
	"Define the objective in business terms",
	"How will your solution be used?",
	"What are the current solutions/workarounds (if any)?",
	"How should you frame this problem (supervised/unsupervised, online/offline, etc.)?",
	"How should performance be measured?",
	"Is the performance measure aligned with the business objective?",
	"What would be the minimum performance needed to reach the business objective?",
	"What are comparable problems? Can you reuse experience or tools?",
	"Is human expertise available?",
	"How would you solve the problem manually?",
	"List the assumptions you (or others) have made so far?",
	"Verify assumptions if possible",
}

var getTheData = []string{
	"List the data you need and how much you need",
	"Find and document where you can get that data",
	"Check how much space it will take",
	"Check legal obligations, and get authorization if necessary",
	"Get access authorization",
	"Create a workspace (with enough storage space)",
	"Get the data",
	"Convert the data to a format you can easily manipulate (without changing the data itself)",
	"Ensure sensitive information is deleted or protected (e.g., anonymized)",
	"Check the size and type of data (time series, geospatial, etc.)",
	"Sample a test set, put it aside, and never look at it (no data snooping!)",
}

var discoverVisualize = []string{
	"Create a copy of the data for exploration (sampling it down to a manageable size if necessary)",
	"Create a Jupyter notebook to keep a record of your data exploration",
	"Study each attribute and its characteristics",
	"For supervised learning tasks, identify the target attribute(s)",
	"Visualize the data",
	"Study the correlations between attributes",
	"Study how you would solve the problem manually",
	"Identify the promising transformation you may want to apply",
	"Identify extra data that would be useful (go back to \"Get the Data\")",
	"Document what you have learned",
}

var attributeDetails = []string{
	"Name",
	"Type (categorical, int/float, bounded/unbounded, text, structured, etc.)",
	"% of missing values",
	"Noisiness and type of noise (stochastic, outliers, rounding errors, etc.)",
	"Usefulness for the task",
	"Type of distribution (Gaussian, uniform, logarithmic, etc.)",
}

var prepareData = []string{
	"Work on copies of the data (keep the original dataset intact)",
	"Write functions for all data transformations you apply",
	"Data cleaning",
	"Feature selection (optional)",
	"Feature engineering, where appropriate",
	"Feature scaling (almost always!)",
}

var transformationReasons = []string{
	"So you can easily prepare the data the next time you get a fresh dataset",
	"So you can apply these transformations in future projects",
	"To clean and prepare the test set",
	"To clean and prepare new data instances once your solution is live",
	"To make it easy to treat your preparation choices as hyperparameters",
}

var dataCleaning = []string{
	"Fix or remove outliers (optional and only as you move along so you're not doing extra work)",
	"Fill in missing values (e.g., with zero, mean, median...) or drop their rows (or columns); again optional and same rules as above.",
}

var featureEngineering = []string{
	"Discretize continuous features",
	"Decompose features (e.g., categorical, date/time, etc.)",
	"Add promising transformations of features (e.g. log(x), sqrt(x), x^2, etc.)",
	"Aggregate features into promising new features",
}

var featureScaling = []string{"Standardize or normalize features"}

var selectTrainModels = []string{
	"Train many quick-and-dirty models from different categories (e.g., linear, naive Bayes, SVM, Random Forest, neural net, etc.) using standard parameters",
	"Measure and compare their performance",
	"Analyze the most significant variables for each algorithm",
	"Analyze the types of errors the models make",
	"Perform a quick round of feature selection and engineering",
	"Perform one or two more quick iterations of the five previous steps",
	"Shortlist the top three to five most promising models, preferring models that make different types of errors",
}

var selectTrainNotes = []string{
	"If the data is huge, you may want to sample smaller training sets so that you can train many different models in a reasonable time (be aware that this penalizes complex models such as large neural nets or Random Forests)",
}

var measureCompare = []string{
	"For each model, use N-fold cross validation and compute the mean and standard deviation of the performance measure on the N folds",
}

var errorsModels = []string{"What data would a human have used to avoid these errors?"}

var fineTune = []string{
	"Fine-tune the hyperparameters using cross-validation",
	"Try Ensemble methods. Combining your best model will often produce better performance than running them individually",
	"Once you are confident about your final model, measure its performance on the test set to estimate the generalization error.",
}

var fineTuneDetails = []string{
	"Treat your data transformation choices as hyperparameters, especially when you are not sure about them (e.g., if you're not sure whether to replace missing values with zeros or with the median value, or to just drop the rows)",
	"Unless there are very few hyperparameter values to explore, prefer random search over grid search. If training is very long, you may prefer a Bayesian optimizer approach (e.g., using Gaussian process priors)",
	"Don't tweak your model after measuring the generalization error: you would just start overfitting the test set.",
}

var presentSolution = []string{
	"Document what you have done.",
	"Create a nice presentation",
	"Explain why your solution achieves the business objective",
	"Don't forget to present interesting points you noticed along the way",
	"Ensure your key findings are communicated through beautiful visualizations or easy-to-remember statements (e.g., \"the median income is the number-one predictor of housing prices\")",
}

var presentationDetails = []string{
	"Make sure you highlight the big picture first",
	"Describe what worked and what did not",
	"List your assumptions and your system's limitations",
}

var launchMonitorMaintain = []string{
	"Get your solution ready for production (plug into production data inputs, write unit tests, etc.)",
	"Write monitoring code to check your system's live performance at regular intervals and trigger alerts when it drops",
	"Retrain your models on a regular basis on fresh data (automate as much as possible)",
}

var monitoringDetails = []string{
	"Beware of slow degradation: models tend to \"rot\" as data evolves",
	"Measuring performance may require a human pipeline (e.g., via a crowdsourcing service)",
	"Also monitor your inputs' quality (e.g., a malfunctioning sensor sending random values, or another team's output becoming stale). This is particularly important for online learning systems.",
}

func items(texts ...[]string) []model.ChecklistItem {
	var out []model.ChecklistItem
	for _, group := range texts {
		for _, text := range group {
			out = append(out, model.ChecklistItem{ID: model.NewID(), Text: text})
		}
	}
	return out
}

func sub(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = "  - " + t
	}
	return out
}

func prefixed(prefix string, texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = prefix + t
	}
	return out
}

// DefaultSections returns the full seed checklist. Content is identical on
// every call; ids are freshly generated so two projects never share them.
func DefaultSections() []model.ChecklistSection {
	section := func(title string, its []model.ChecklistItem) model.ChecklistSection {
		return model.ChecklistSection{ID: model.NewID(), Title: title, Items: its, Notes: ""}
	}
	return []model.ChecklistSection{
		section("Frame the Problem; Look at the big picture", items(frameTheProblem)),
		section("Get the data", items(getTheData)),
		section("Discover and visualize the data to gain insights", items(
			discoverVisualize[:3],
			sub(attributeDetails),
			discoverVisualize[3:],
		)),
		section("Prepare the data for ML algorithms", items(
			prepareData[0:2],
			sub(transformationReasons),
			prepareData[2:3],
			sub(dataCleaning),
			prepareData[3:4],
			sub([]string{"Drop the attributes that provide no useful information for the task"}),
			prepareData[4:5],
			sub(featureEngineering),
			prepareData[5:6],
			sub(featureScaling),
		)),
		section("Select a model and train it", items(
			prefixed("NOTE: ", selectTrainNotes),
			selectTrainModels,
			sub(measureCompare),
			sub(errorsModels),
		)),
		section("Fine-tune your model", items(fineTune, sub(fineTuneDetails))),
		section("Present your solution", items(presentSolution, sub(presentationDetails))),
		section("Launch, monitor, and maintain your system", items(launchMonitorMaintain, sub(monitoringDetails))),
	}
}
